// Command kore is the CLI front end (F10) over the kernel and its
// pipeline: run a file, start the REPL, check or evaluate one expression,
// or search the environment for a declaration.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/kernel"
	"github.com/korelang/kore/internal/pipeline"
	"github.com/korelang/kore/internal/repl"
	"github.com/korelang/kore/internal/scenario"
	"github.com/korelang/kore/internal/term"
	"github.com/spf13/cobra"
)

var (
	// version and commit are set by ldflags during release builds.
	version = "dev"
	commit  = "unknown"
	trace   bool
)

func main() {
	root := &cobra.Command{
		Use:   "kore",
		Short: "A Calculus-of-Constructions kernel with universe polymorphism",
	}
	root.PersistentFlags().BoolVar(&trace, "trace", false, "print a reduction trace (each beta/delta step) for debugging nontermination")
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(runCmd(), replCmd(), checkCmd(), evalCmd(), searchCmd(), versionCmd(), verifyScenariosCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Load a file, running each declaration in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := kernel.New()
			applyTrace(env)
			res, err := pipeline.RunFile(args[0], env)
			if err != nil {
				return reportFail(err)
			}
			printResult(res)
			return nil
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := repl.New()
			r.Trace = trace
			r.Start(os.Stdout)
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check EXPR",
		Short: "Check or infer the type of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := kernel.New()
			applyTrace(env)
			res, err := pipeline.Run([]byte("check "+args[0]), env)
			if err != nil {
				return reportFail(err)
			}
			printResult(res)
			return nil
		},
	}
}

func evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate an expression to weak-head normal form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := kernel.New()
			applyTrace(env)
			res, err := pipeline.Run([]byte("eval "+args[0]), env)
			if err != nil {
				return reportFail(err)
			}
			printResult(res)
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search NAME",
		Short: "Summarize a declared name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := kernel.New()
			res, err := pipeline.Run([]byte("search "+args[0]), env)
			if err != nil {
				return reportFail(err)
			}
			printResult(res)
			return nil
		},
	}
}

func verifyScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-scenarios MANIFEST",
		Short: "Cross-check the scenario manifest against actual kernel behavior",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := scenario.Verify(args[0])
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if r.Pass {
					fmt.Printf("%s %s\n", color.New(color.FgGreen).Sprint("ok"), r.Scenario.Name)
					continue
				}
				failed++
				fmt.Printf("%s %s: %s\n", color.New(color.FgRed).Sprint("FAIL"), r.Scenario.Name, r.Detail)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios drifted from the manifest", failed, len(results))
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("kore %s (%s)\n", version, commit)
			return nil
		},
	}
}

func applyTrace(env *kernel.Env) {
	if !trace {
		return
	}
	env.Checker.Machine.Trace = func(step string, before, after *term.Term) {
		fmt.Fprintf(os.Stderr, "%s %s: %s -> %s\n", color.New(color.Faint).Sprint("trace"), step, before, after)
	}
}

func reportFail(err error) error {
	if rep, ok := errors.AsReport(err); ok {
		fmt.Fprintf(os.Stderr, "%s [%s/%s] %s\n", color.New(color.FgRed).Sprint("error"), rep.Phase, rep.Code, rep.Message)
		return err
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed).Sprint("error"), err)
	return err
}

func printResult(res pipeline.Result) {
	switch res.Kind {
	case pipeline.KindDeclared:
		fmt.Printf("%s : %s\n", res.Name, res.Type)
	case pipeline.KindType:
		fmt.Printf(":: %s\n", res.Type)
	case pipeline.KindEval:
		fmt.Printf("=> %s\n", res.Term)
	case pipeline.KindSearch:
		fmt.Printf("%s (univ arity %d, body: %v) : %s\n", res.Summary.Name, res.Summary.UnivArity, res.Summary.HasBody, res.Summary.Type)
	}
}
