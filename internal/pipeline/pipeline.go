// Package pipeline wires the front end to the kernel (F5): lex, parse,
// elaborate, and dispatch one command against a kernel.Env, reporting
// structured errors at whichever phase they originate. RunFile adds the
// import loader (F6) on top of Run.
package pipeline

import (
	"os"
	"path/filepath"

	"github.com/korelang/kore/internal/ast"
	"github.com/korelang/kore/internal/elaborate"
	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/kenv"
	"github.com/korelang/kore/internal/kernel"
	"github.com/korelang/kore/internal/parser"
	"github.com/korelang/kore/internal/term"
)

// Kind tags which of spec.md's four command outcomes a Result carries.
type Kind int

const (
	KindDeclared Kind = iota // def NAME ... — Name and Type are set
	KindType                 // check term : T / check term — Type is set
	KindEval                 // eval term — Term is set (reduced)
	KindSearch               // search NAME — Name and Summary are set
)

// Result is the outcome of running one command through the pipeline.
type Result struct {
	Kind    Kind
	Name    string
	Type    *term.Term
	Term    *term.Term
	Summary kenv.Summary
}

// Run lexes, parses, elaborates, and dispatches exactly one command from
// source against env.
func Run(source []byte, env *kernel.Env) (Result, error) {
	cmds, err := parser.Parse(source)
	if err != nil {
		return Result{}, err
	}
	if len(cmds) != 1 {
		return Result{}, errors.Parsef(errors.PAR001, "expected exactly one command, got %d", len(cmds))
	}
	if _, ok := cmds[0].(ast.Import); ok {
		return Result{}, errors.Parsef(errors.PAR001, "import commands must be run with RunFile")
	}
	return dispatch(cmds[0], env)
}

// RunFile reads path, splits it into consecutive top-level commands, and
// folds Run over them against one shared environment. import commands
// recursively load the named files into the same environment; a set of
// in-progress paths rejects cycles with IMP002 rather than looping.
func RunFile(path string, env *kernel.Env) (Result, error) {
	return runFile(path, env, map[string]bool{})
}

func runFile(path string, env *kernel.Env, inProgress map[string]bool) (Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Result{}, errors.Parsef(errors.IMP001, "cannot resolve path %s: %v", path, err)
	}
	if inProgress[abs] {
		return Result{}, errors.Parsef(errors.IMP002, "import cycle detected at %s", path)
	}
	inProgress[abs] = true
	defer delete(inProgress, abs)

	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, errors.Parsef(errors.IMP001, "cannot read %s: %v", path, err)
	}
	cmds, err := parser.Parse(src)
	if err != nil {
		return Result{}, err
	}

	var last Result
	for _, cmd := range cmds {
		if imp, ok := cmd.(ast.Import); ok {
			dir := filepath.Dir(path)
			for _, f := range imp.Files {
				last, err = runFile(filepath.Join(dir, f), env, inProgress)
				if err != nil {
					return Result{}, err
				}
			}
			continue
		}
		last, err = dispatch(cmd, env)
		if err != nil {
			return Result{}, err
		}
	}
	return last, nil
}

// dispatch elaborates and runs one non-Import command against env, per
// spec.md §1's routing: def infers-or-checks and extends the
// environment, check invokes the checker, eval whnf-reduces.
func dispatch(cmd ast.Command, env *kernel.Env) (Result, error) {
	elab := elaborate.New(env.Pool, env.Decls)

	switch c := cmd.(type) {
	case ast.Define:
		def, err := elab.Define(c)
		if err != nil {
			return Result{}, err
		}
		typ := def.Type
		if typ == nil {
			typ, err = env.InferType(def.Body)
			if err != nil {
				return Result{}, err
			}
		}
		if err := env.AddDefinition(def.Name, def.UnivArity, def.Body, typ); err != nil {
			return Result{}, err
		}
		return Result{Kind: KindDeclared, Name: def.Name, Type: typ}, nil

	case ast.CheckType:
		t, err := elab.Term(c.Term)
		if err != nil {
			return Result{}, err
		}
		ty, err := elab.Term(c.Type)
		if err != nil {
			return Result{}, err
		}
		if err := env.CheckType(t, ty); err != nil {
			return Result{}, err
		}
		return Result{Kind: KindType, Type: ty}, nil

	case ast.GetType:
		t, err := elab.Term(c.Term)
		if err != nil {
			return Result{}, err
		}
		ty, err := env.InferType(t)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindType, Type: ty}, nil

	case ast.Eval:
		t, err := elab.Term(c.Term)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindEval, Term: env.Whnf(t)}, nil

	case ast.Search:
		s, err := env.Summarize(c.Name)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindSearch, Name: c.Name, Summary: s}, nil
	}

	return Result{}, errors.Parsef(errors.PAR001, "unsupported command %T", cmd)
}
