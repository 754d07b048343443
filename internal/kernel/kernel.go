// Package kernel is the facade over C1–C5: a single entry point front
// ends drive instead of wiring term.Pool, kenv.Env, reduce.Machine, and
// check.Checker themselves. It adds no typing rules of its own.
package kernel

import (
	"github.com/korelang/kore/internal/check"
	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/kenv"
	"github.com/korelang/kore/internal/level"
	"github.com/korelang/kore/internal/reduce"
	"github.com/korelang/kore/internal/term"
)

// Env bundles a term pool, the global environment, and a checker/reducer
// pair over them. Each Env is its own checking session; term.Term values
// from different Envs must never be mixed, since Prod/Abs/App equality
// relies on pointer identity from a single Pool.
type Env struct {
	Pool    *term.Pool
	Decls   *kenv.Env
	Checker *check.Checker
}

// New creates an empty kernel environment.
func New() *Env {
	pool := term.NewPool()
	decls := kenv.New()
	return &Env{Pool: pool, Decls: decls, Checker: check.New(pool, decls)}
}

// AddAxiom declares name as an axiom of the given universe arity and
// type, after checking that type itself is well-sorted.
func (e *Env) AddAxiom(name string, univArity int, typ *term.Term) error {
	typTy, err := e.Checker.Infer(check.Context{}, typ)
	if err != nil {
		return err
	}
	if w := e.Checker.Machine.Whnf(typTy); w.Kind() != term.KSort {
		return errors.Kernelf(errors.KNL004, "not a type: %s has type %s, which is not a sort", typ, w)
	}
	return e.Decls.Declare(name, univArity, typ)
}

// AddDefinition declares name as a definition: body must check against
// type before the declaration is recorded, so the environment is never
// left holding an ill-typed definition.
func (e *Env) AddDefinition(name string, univArity int, body, typ *term.Term) error {
	if err := e.Checker.Check(check.Context{}, body, typ); err != nil {
		return err
	}
	return e.Decls.Define(name, univArity, body, typ)
}

// InferType computes a type for t in the empty context.
func (e *Env) InferType(t *term.Term) (*term.Term, error) {
	return e.Checker.Infer(check.Context{}, t)
}

// CheckType asserts t has type expected in the empty context.
func (e *Env) CheckType(t, expected *term.Term) error {
	return e.Checker.Check(check.Context{}, t, expected)
}

// Whnf reduces t to weak-head normal form.
func (e *Env) Whnf(t *term.Term) *term.Term {
	return e.Checker.Machine.Whnf(t)
}

// NormalForm fully normalizes t, including under binders.
func (e *Env) NormalForm(t *term.Term) *term.Term {
	return e.Checker.Machine.NormalForm(t)
}

// Lookup returns the declaration bound to name.
func (e *Env) Lookup(name string) (*kenv.Decl, error) {
	return e.Decls.Lookup(name)
}

// Instantiate substitutes inst for decl's universe parameters, returning
// its (possibly nil, for axioms) body and its type.
func (e *Env) Instantiate(decl *kenv.Decl, inst []*level.Level) (body, typ *term.Term, err error) {
	return kenv.Instantiate(e.Pool, decl, inst)
}

// Summary is the read-only view of a declaration used by search and REPL
// introspection, separate from kenv.Decl so callers never reach into the
// environment's internals to describe one. It is computed once, at
// declare/define time, and cached in kenv.Decl (spec §4.10); Summarize
// never re-derives it from the declaration's term.
type Summary = kenv.Summary

// Summarize describes name without exposing the underlying Decl.
func (e *Env) Summarize(name string) (Summary, error) {
	return e.Decls.Summarize(name)
}

// Names returns every declared name in insertion order.
func (e *Env) Names() []string {
	return e.Decls.Names()
}
