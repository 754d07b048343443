// Package elaborate implements name resolution (F4): it rewrites F2's
// named, unbound surface terms into C2's de Bruijn terms, resolving
// universe-parameter variables and assembling Decl instance vectors.
// This is the "name resolution and de Bruijn binding" interface boundary
// spec.md places outside the kernel proper.
package elaborate

import (
	"github.com/korelang/kore/internal/ast"
	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/kenv"
	"github.com/korelang/kore/internal/level"
	"github.com/korelang/kore/internal/term"
)

// Elaborator resolves surface terms against a fixed global environment.
// It holds no per-command mutable state; scope is threaded explicitly
// through each call, mirroring how check.Context is threaded in the
// kernel.
type Elaborator struct {
	pool *term.Pool
	env  *kenv.Env
}

// New creates an Elaborator that interns into pool and resolves global
// names against env.
func New(pool *term.Pool, env *kenv.Env) *Elaborator {
	return &Elaborator{pool: pool, env: env}
}

// varScope is the list of surface names currently bound by an enclosing
// fun/Pi, innermost (most recently bound) first — index i is the name
// bound at de Bruijn depth i.
type varScope []string

func (s varScope) push(name string) varScope {
	out := make(varScope, 0, len(s)+1)
	out = append(out, name)
	out = append(out, s...)
	return out
}

func (s varScope) index(name string) (int, bool) {
	for i, n := range s {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Term elaborates a top-level surface term (as seen by `check`/`eval`)
// with no bound variables or universe parameters in scope.
func (e *Elaborator) Term(t ast.Term) (*term.Term, error) {
	return e.term(t, nil, nil)
}

func (e *Elaborator) term(t ast.Term, vs varScope, us []string) (*term.Term, error) {
	switch n := t.(type) {
	case ast.TVar:
		if i, ok := vs.index(n.Name); ok {
			return e.pool.Var(i), nil
		}
		if _, err := e.env.Lookup(n.Name); err == nil {
			return e.pool.Decl(n.Name, nil), nil
		}
		return nil, errors.Elaboratef(errors.ELB001, "unbound name: %s", n.Name)

	case ast.TRef:
		decl, err := e.env.Lookup(n.Name)
		if err != nil {
			return nil, errors.Elaboratef(errors.ELB001, "unbound name: %s", n.Name)
		}
		if len(n.Levels) != decl.UnivArity {
			return nil, errors.Elaboratef(errors.ELB003,
				"universe instance arity mismatch for %s: declaration takes %d, got %d", n.Name, decl.UnivArity, len(n.Levels))
		}
		levels := make([]*level.Level, len(n.Levels))
		for i, le := range n.Levels {
			lvl, err := e.levelExpr(le, us)
			if err != nil {
				return nil, err
			}
			levels[i] = lvl
		}
		return e.pool.Decl(n.Name, levels), nil

	case ast.TSort:
		lvl, err := e.levelExpr(n.Level, us)
		if err != nil {
			return nil, err
		}
		return e.pool.Sort(lvl), nil

	case ast.TApp:
		fn, err := e.term(n.Fn, vs, us)
		if err != nil {
			return nil, err
		}
		arg, err := e.term(n.Arg, vs, us)
		if err != nil {
			return nil, err
		}
		return e.pool.App(fn, arg), nil

	case ast.TAbs:
		dom, err := e.term(n.Domain, vs, us)
		if err != nil {
			return nil, err
		}
		body, err := e.term(n.Body, vs.push(n.Param), us)
		if err != nil {
			return nil, err
		}
		return e.pool.Abs(dom, body), nil

	case ast.TProd:
		dom, err := e.term(n.Domain, vs, us)
		if err != nil {
			return nil, err
		}
		cod, err := e.term(n.Codomain, vs.push(n.Param), us)
		if err != nil {
			return nil, err
		}
		return e.pool.Prod(dom, cod), nil
	}
	return nil, errors.Elaboratef(errors.ELB001, "unsupported surface term %T", t)
}

func (e *Elaborator) levelExpr(le ast.LevelExpr, us []string) (*level.Level, error) {
	switch n := le.(type) {
	case ast.LENat:
		return level.NewNat(n.N), nil

	case ast.LEVar:
		for i, name := range us {
			if name == n.Name {
				return level.NewVar(i), nil
			}
		}
		return nil, errors.Elaboratef(errors.ELB002, "unbound universe variable: %s", n.Name)

	case ast.LEPlus:
		base, err := e.levelExpr(n.Base, us)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n.N; i++ {
			base = level.NewSucc(base)
		}
		return base, nil

	case ast.LEMax:
		l, err := e.levelExpr(n.Left, us)
		if err != nil {
			return nil, err
		}
		r, err := e.levelExpr(n.Right, us)
		if err != nil {
			return nil, err
		}
		return level.NewMax(l, r), nil

	case ast.LEIMax:
		l, err := e.levelExpr(n.Left, us)
		if err != nil {
			return nil, err
		}
		r, err := e.levelExpr(n.Right, us)
		if err != nil {
			return nil, err
		}
		return level.NewIMax(l, r), nil
	}
	return nil, errors.Elaboratef(errors.ELB002, "invalid universe expression")
}

// wrapProd desugars a `def` argument list onto a return type: spec §6.1's
// "Args desugar to nested Π/λ on the declared body and type."
func wrapProd(args []ast.Arg, ret ast.Term) ast.Term {
	result := ret
	for i := len(args) - 1; i >= 0; i-- {
		result = ast.TProd{Param: args[i].Name, Domain: args[i].Domain, Codomain: result}
	}
	return result
}

func wrapAbs(args []ast.Arg, body ast.Term) ast.Term {
	result := body
	for i := len(args) - 1; i >= 0; i-- {
		result = ast.TAbs{Param: args[i].Name, Domain: args[i].Domain, Body: result}
	}
	return result
}

// Definition is one elaborated `def`: a name, its universe-parameter
// arity, a body, and a type (nil when the surface command gave no `: T`
// annotation — the caller infers one).
type Definition struct {
	Name      string
	UnivArity int
	Body      *term.Term
	Type      *term.Term // nil if the command omitted an explicit type
}

// Define elaborates a `def` command, desugaring its argument list into
// the body and (if present) type before resolving names.
func (e *Elaborator) Define(d ast.Define) (Definition, error) {
	us := d.UnivParams

	bodyTerm, err := e.term(wrapAbs(d.Args, d.Body), nil, us)
	if err != nil {
		return Definition{}, err
	}

	var typTerm *term.Term
	if d.Type != nil {
		typTerm, err = e.term(wrapProd(d.Args, d.Type), nil, us)
		if err != nil {
			return Definition{}, err
		}
	}

	return Definition{Name: d.Name, UnivArity: len(us), Body: bodyTerm, Type: typTerm}, nil
}
