// Package kenv implements the global environment (C3): a persistent,
// insertion-ordered mapping from name to declaration.
package kenv

import (
	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/level"
	"github.com/korelang/kore/internal/term"
)

// Decl is a single global declaration: a name, its universe parameters
// (by arity only — the kernel never needs their surface names once
// elaborated), an optional body (absent for axioms), and a type. Body and
// Type are closed under the declared universe parameters and under no
// term binders, per spec §3.3.
type Decl struct {
	Name      string
	UnivArity int
	Body      *term.Term // nil for axioms
	Type      *term.Term
	Summary   Summary
}

// HasBody reports whether the declaration has a definition (vs. being an
// axiom).
func (d *Decl) HasBody() bool { return d.Body != nil }

// Summary is the read-only view of a declaration used by search and REPL
// introspection (spec §4.10): name, universe-parameter arity, type, and
// whether it has a body. It is computed once, when the declaration is
// inserted, and stored next to it — a Summary computed once is valid
// forever, since declarations are never mutated (spec §3.6).
type Summary struct {
	Name      string
	UnivArity int
	Type      *term.Term
	HasBody   bool
}

// Env is the persistent global environment. The zero value is not usable;
// use New. Insertion order is preserved for deterministic printing and
// error reporting (spec §3.4); lookups never observe a partially-inserted
// declaration because insertion is a single atomic map write.
type Env struct {
	byName map[string]*Decl
	order  []string
}

// New creates an empty environment.
func New() *Env {
	return &Env{byName: make(map[string]*Decl)}
}

// Declare records an axiom: a name, its universe-parameter arity, and a
// type, with no body. Fails with KNL007 if name is already bound.
func (e *Env) Declare(name string, univArity int, typ *term.Term) error {
	return e.insert(&Decl{Name: name, UnivArity: univArity, Type: typ})
}

// Define records a definition: a name, universe-parameter arity, body, and
// type. The caller is responsible for having typechecked body against
// type beforehand — Define does not re-typecheck (spec §4.3). Fails with
// KNL007 if name is already bound.
func (e *Env) Define(name string, univArity int, body, typ *term.Term) error {
	return e.insert(&Decl{Name: name, UnivArity: univArity, Body: body, Type: typ})
}

func (e *Env) insert(d *Decl) error {
	if _, exists := e.byName[d.Name]; exists {
		return errors.Kernelf(errors.KNL007, "duplicate declaration: %s", d.Name)
	}
	d.Summary = Summary{Name: d.Name, UnivArity: d.UnivArity, Type: d.Type, HasBody: d.HasBody()}
	e.byName[d.Name] = d
	e.order = append(e.order, d.Name)
	return nil
}

// Lookup returns the declaration bound to name, or KNL002 if unbound.
func (e *Env) Lookup(name string) (*Decl, error) {
	d, ok := e.byName[name]
	if !ok {
		return nil, errors.Kernelf(errors.KNL002, "unknown declaration: %s", name)
	}
	return d, nil
}

// Summarize looks up name and returns its cached Summary.
func (e *Env) Summarize(name string) (Summary, error) {
	d, err := e.Lookup(name)
	if err != nil {
		return Summary{}, err
	}
	return d.Summary, nil
}

// Names returns every declared name in insertion order.
func (e *Env) Names() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Instantiate returns (body, type) of decl with its universe parameters
// substituted by inst, or KNL003 if len(inst) != decl's arity. Body is nil
// when decl is an axiom.
func Instantiate(pool *term.Pool, decl *Decl, inst []*level.Level) (body, typ *term.Term, err error) {
	if len(inst) != decl.UnivArity {
		return nil, nil, errors.Kernelf(errors.KNL003,
			"universe arity mismatch for %s: expected %d, got %d", decl.Name, decl.UnivArity, len(inst))
	}
	typ = pool.InstantiateLevels(decl.Type, inst)
	if decl.Body != nil {
		body = pool.InstantiateLevels(decl.Body, inst)
	}
	return body, typ, nil
}
