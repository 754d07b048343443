package check

import (
	"github.com/korelang/kore/internal/level"
	"github.com/korelang/kore/internal/term"
)

// Conv decides definitional equality: whnf-reduce both sides, then compare
// head constructors per spec §4.4's eight cases (structural congruence,
// one-sided eta, and proof irrelevance for common Prop-sorted types).
func (c *Checker) Conv(ctx Context, a, b *term.Term) bool {
	wa := c.Machine.Whnf(a)
	wb := c.Machine.Whnf(b)
	if wa.Equal(wb) {
		return true
	}
	if wa.Kind() == wb.Kind() {
		switch wa.Kind() {
		case term.KSort:
			return wa.SortLevel().Equal(wb.SortLevel())

		case term.KVar:
			return wa.VarIndex() == wb.VarIndex()

		case term.KApp:
			return c.Conv(ctx, wa.AppFunc(), wb.AppFunc()) && c.Conv(ctx, wa.AppArg(), wb.AppArg())

		case term.KAbs:
			if !c.Conv(ctx, wa.Domain(), wb.Domain()) {
				return false
			}
			return c.Conv(ctx.Extend(wa.Domain()), wa.Body(), wb.Body())

		case term.KProd:
			if !c.Conv(ctx, wa.Domain(), wb.Domain()) {
				return false
			}
			return c.Conv(ctx.Extend(wa.Domain()), wa.Codomain(), wb.Codomain())

		case term.KDecl:
			if wa.DeclName() != wb.DeclName() || len(wa.DeclInstance()) != len(wb.DeclInstance()) {
				return false
			}
			for i := range wa.DeclInstance() {
				if !wa.DeclInstance()[i].Equal(wb.DeclInstance()[i]) {
					return false
				}
			}
			return true
		}
	}

	if ok := c.etaConv(ctx, wa, wb); ok {
		return true
	}
	if ok := c.etaConv(ctx, wb, wa); ok {
		return true
	}

	return c.proofIrrelevant(ctx, a, b)
}

// etaConv checks one direction of eta: lam (an Abs whose body is App(f,
// Var 0) with f not depending on Var 0) versus other, under
// Abs(τ, App(f, Var 0)) ≡ g when f ≡ lift_1 g.
func (c *Checker) etaConv(ctx Context, lam, other *term.Term) bool {
	if lam.Kind() != term.KAbs {
		return false
	}
	body := c.Machine.Whnf(lam.Body())
	if body.Kind() != term.KApp || body.AppArg().Kind() != term.KVar || body.AppArg().VarIndex() != 0 {
		return false
	}
	f := body.AppFunc()
	if occursFree(f, 0) {
		return false
	}
	liftedOther := c.Pool.Lift(other, 1, 0)
	return c.Conv(ctx.Extend(lam.Domain()), f, liftedOther)
}

// occursFree reports whether Var(idx) occurs free in t.
func occursFree(t *term.Term, idx int) bool {
	switch t.Kind() {
	case term.KVar:
		return t.VarIndex() == idx
	case term.KApp:
		return occursFree(t.AppFunc(), idx) || occursFree(t.AppArg(), idx)
	case term.KAbs, term.KProd:
		return occursFree(t.Domain(), idx) || occursFree(t.Codomain(), idx+1)
	default: // Sort, Decl
		return false
	}
}

// proofIrrelevant implements case 8: a and b are equal when the checker
// can separately infer that both inhabit a common type whose sort is
// Prop (Sort 0).
func (c *Checker) proofIrrelevant(ctx Context, a, b *term.Term) bool {
	ta, err := c.Infer(ctx, a)
	if err != nil {
		return false
	}
	tb, err := c.Infer(ctx, b)
	if err != nil {
		return false
	}
	if !c.Conv(ctx, ta, tb) {
		return false
	}
	sort, err := c.sortOf(ctx, ta)
	if err != nil {
		return false
	}
	n, ok := level.AsNat(sort)
	return ok && n == 0
}
