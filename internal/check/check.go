// Package check implements the bidirectional type checker (C5): infer and
// check over the Π/Sort/App rules of CoC, driving the reducer (C4) to
// decide definitional equality.
package check

import (
	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/kenv"
	"github.com/korelang/kore/internal/level"
	"github.com/korelang/kore/internal/reduce"
	"github.com/korelang/kore/internal/term"
)

// Checker ties a term pool, environment, and reduction machine together
// for one checking session.
type Checker struct {
	Pool    *term.Pool
	Env     *kenv.Env
	Machine *reduce.Machine
}

// New creates a Checker over pool and env, with its own reduction machine.
func New(pool *term.Pool, env *kenv.Env) *Checker {
	return &Checker{Pool: pool, Env: env, Machine: reduce.New(pool, env)}
}

// Infer computes a type T such that Γ ⊢ t : T, or a structured error.
func (c *Checker) Infer(ctx Context, t *term.Term) (*term.Term, error) {
	switch t.Kind() {
	case term.KVar:
		typ, ok := ctx.At(t.VarIndex())
		if !ok {
			return nil, errors.Kernelf(errors.KNL001, "unbound variable: index %d (context has %d bindings)", t.VarIndex(), ctx.Len())
		}
		return c.Pool.Lift(typ, t.VarIndex()+1, 0), nil

	case term.KSort:
		return c.Pool.Sort(level.NewSucc(t.SortLevel())), nil

	case term.KProd:
		sDom, err := c.sortOf(ctx, t.Domain())
		if err != nil {
			return nil, err
		}
		sCod, err := c.sortOf(ctx.Extend(t.Domain()), t.Codomain())
		if err != nil {
			return nil, err
		}
		return c.Pool.Sort(level.NewIMax(sDom, sCod)), nil

	case term.KAbs:
		if _, err := c.sortOf(ctx, t.Domain()); err != nil {
			return nil, err
		}
		bodyT, err := c.Infer(ctx.Extend(t.Domain()), t.Body())
		if err != nil {
			return nil, err
		}
		return c.Pool.Prod(t.Domain(), bodyT), nil

	case term.KApp:
		fnT, err := c.Infer(ctx, t.AppFunc())
		if err != nil {
			return nil, err
		}
		whnfFn := c.Machine.Whnf(fnT)
		if whnfFn.Kind() != term.KProd {
			return nil, errors.Kernelf(errors.KNL005, "not a function type: %s", whnfFn)
		}
		if err := c.Check(ctx, t.AppArg(), whnfFn.Domain()); err != nil {
			return nil, err
		}
		return c.Pool.SubstTop(whnfFn.Codomain(), t.AppArg()), nil

	case term.KDecl:
		decl, err := c.Env.Lookup(t.DeclName())
		if err != nil {
			return nil, err
		}
		_, typ, err := kenv.Instantiate(c.Pool, decl, t.DeclInstance())
		if err != nil {
			return nil, err
		}
		return typ, nil
	}
	return nil, errors.Kernelf(errors.KNL001, "malformed term")
}

// Check asserts Γ ⊢ t : T by inferring t's type and requiring it convert
// to T.
func (c *Checker) Check(ctx Context, t, expected *term.Term) error {
	inferred, err := c.Infer(ctx, t)
	if err != nil {
		return err
	}
	if !c.Conv(ctx, inferred, expected) {
		wi := c.Machine.Whnf(inferred)
		we := c.Machine.Whnf(expected)
		return errors.Wrap(&errors.Report{
			Schema:  "kore.error/v1",
			Code:    errors.KNL006,
			Phase:   "kernel",
			Message: "type mismatch: expected " + we.String() + ", got " + wi.String(),
			Data: map[string]any{
				"expected": we.String(),
				"inferred": wi.String(),
			},
		})
	}
	return nil
}

// sortOf computes the sort of a candidate type: infer its type, whnf it,
// and require the whnf to be a Sort (spec §4.5's "sort of a type").
func (c *Checker) sortOf(ctx Context, t *term.Term) (*level.Level, error) {
	typ, err := c.Infer(ctx, t)
	if err != nil {
		return nil, err
	}
	w := c.Machine.Whnf(typ)
	if w.Kind() != term.KSort {
		return nil, errors.Kernelf(errors.KNL004, "not a type: %s has type %s, which is not a sort", t, w)
	}
	return w.SortLevel(), nil
}
