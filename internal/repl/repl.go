// Package repl implements the interactive loop (F9): reads a command
// (buffered across lines until its parens/braces balance), runs it
// through the pipeline (F5), and prints the result or error in colour.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/kernel"
	"github.com/korelang/kore/internal/pipeline"
	"github.com/korelang/kore/internal/term"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// REPL is one interactive session over a kernel environment.
type REPL struct {
	env     *kernel.Env
	history []string
	Trace   bool
}

// New creates a REPL over a fresh, empty kernel environment.
func New() *REPL {
	return &REPL{env: kernel.New()}
}

func historyFilePath() string {
	return filepath.Join(os.TempDir(), ".kore_history")
}

// Start runs the read-eval-print loop, reading lines from the terminal
// through liner and writing to out, until EOF or a :quit command.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	if f, err := os.Open(historyFilePath()); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))

	line.SetCompleter(func(input string) (c []string) {
		if !strings.HasPrefix(input, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":type", ":search", ":env", ":reset", ":quit"} {
			if strings.HasPrefix(cmd, input) {
				c = append(c, cmd)
			}
		}
		return c
	})

	var buf []string
	for {
		prompt := "kore> "
		if len(buf) > 0 {
			prompt = "....> "
		}
		input, err := line.Prompt(prompt)
		if err == io.EOF {
			fmt.Fprintln(out, green("bye"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if len(buf) == 0 && trimmed == "" {
			continue
		}
		if len(buf) == 0 && strings.HasPrefix(trimmed, ":") {
			line.AppendHistory(trimmed)
			if r.handleMeta(trimmed, out) {
				break
			}
			continue
		}

		buf = append(buf, input)
		joined := strings.Join(buf, "\n")
		if !balanced(joined) {
			continue
		}

		line.AppendHistory(joined)
		r.history = append(r.history, joined)
		r.run(joined, out)
		buf = nil
	}

	if f, err := os.Create(historyFilePath()); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// balanced reports whether s has no unmatched '(' or '{', the signal the
// REPL uses to decide a multi-line command is ready to run.
func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
			if depth < 0 {
				return true // let the parser report the real error
			}
		}
	}
	return depth == 0
}

func (r *REPL) run(src string, out io.Writer) {
	if r.Trace {
		r.env.Checker.Machine.Trace = func(step string, before, after *term.Term) {
			fmt.Fprintf(out, "%s %s: %s -> %s\n", dim("trace"), step, before, after)
		}
	} else {
		r.env.Checker.Machine.Trace = nil
	}
	res, err := pipeline.Run([]byte(src), r.env)
	if err != nil {
		r.printError(err, out)
		return
	}
	r.printResult(res, out)
}

func (r *REPL) printResult(res pipeline.Result, out io.Writer) {
	switch res.Kind {
	case pipeline.KindDeclared:
		fmt.Fprintf(out, "%s %s : %s\n", green("def"), res.Name, res.Type)
	case pipeline.KindType:
		fmt.Fprintf(out, "%s %s\n", green("::"), res.Type)
	case pipeline.KindEval:
		fmt.Fprintf(out, "%s %s\n", cyan("=>"), res.Term)
	case pipeline.KindSearch:
		fmt.Fprintf(out, "%s (univ arity %d, body: %v) : %s\n", res.Summary.Name, res.Summary.UnivArity, res.Summary.HasBody, res.Summary.Type)
	}
}

func (r *REPL) printError(err error, out io.Writer) {
	if rep, ok := errors.AsReport(err); ok {
		fmt.Fprintf(out, "%s [%s/%s] %s\n", red("error"), rep.Phase, rep.Code, rep.Message)
		return
	}
	fmt.Fprintf(out, "%s %v\n", red("error"), err)
}

// handleMeta runs a REPL-only meta-command. It returns true when the
// session should exit.
func (r *REPL) handleMeta(cmd string, out io.Writer) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":quit", ":q":
		fmt.Fprintln(out, green("bye"))
		return true

	case ":help", ":h":
		fmt.Fprintln(out, "commands: def, check, eval, search, import, :type EXPR, :search NAME, :env, :reset, :quit")

	case ":type":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: :type EXPR")
			return false
		}
		expr := strings.Join(fields[1:], " ")
		r.run("check "+expr, out)

	case ":search":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: :search NAME")
			return false
		}
		r.run("search "+fields[1], out)

	case ":env":
		for _, name := range r.env.Names() {
			fmt.Fprintln(out, name)
		}

	case ":reset":
		r.env = kernel.New()
		fmt.Fprintln(out, yellow("environment reset"))

	default:
		fmt.Fprintf(out, "unknown command: %s\n", fields[0])
	}
	return false
}
