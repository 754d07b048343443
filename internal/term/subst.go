package term

import "github.com/korelang/kore/internal/level"

// Lift adds k to every Var(i) in t with i >= c. It short-circuits when
// k == 0 and is structural otherwise; subterms rebuilt identically are
// re-interned to the same node by Pool.
func (p *Pool) Lift(t *Term, k, c int) *Term {
	if k == 0 {
		return t
	}
	return p.lift(t, k, c)
}

func (p *Pool) lift(t *Term, k, c int) *Term {
	switch t.kind {
	case KVar:
		if t.idx >= c {
			return p.Var(t.idx + k)
		}
		return t
	case KSort, KDecl:
		return t
	case KApp:
		return p.App(p.lift(t.fn, k, c), p.lift(t.arg, k, c))
	case KAbs:
		return p.Abs(p.lift(t.dom, k, c), p.lift(t.cod, k, c+1))
	case KProd:
		return p.Prod(p.lift(t.dom, k, c), p.lift(t.cod, k, c+1))
	}
	return t
}

// Subst replaces Var(c) with u (lifted appropriately through enclosing
// binders) in t, decrementing Var(i) for i > c. Under a Π/λ the cutoff
// increases by one, matching t[c <- u].
func (p *Pool) Subst(t *Term, c int, u *Term) *Term {
	switch t.kind {
	case KVar:
		switch {
		case t.idx == c:
			return p.Lift(u, c, 0)
		case t.idx > c:
			return p.Var(t.idx - 1)
		default:
			return t
		}
	case KSort, KDecl:
		return t
	case KApp:
		return p.App(p.Subst(t.fn, c, u), p.Subst(t.arg, c, u))
	case KAbs:
		return p.Abs(p.Subst(t.dom, c, u), p.Subst(t.cod, c+1, u))
	case KProd:
		return p.Prod(p.Subst(t.dom, c, u), p.Subst(t.cod, c+1, u))
	}
	return t
}

// SubstTop is t[0 <- u], the substitution performed by beta and by App's
// inference rule (c[0 <- a]).
func (p *Pool) SubstTop(t, u *Term) *Term {
	return p.Subst(t, 0, u)
}

// InstantiateLevels substitutes universe-parameter variables throughout t
// per vals, used when instantiating a declaration's body/type at a
// specific universe instance vector.
func (p *Pool) InstantiateLevels(t *Term, vals []*level.Level) *Term {
	switch t.kind {
	case KVar:
		return t
	case KSort:
		return p.Sort(t.sort.Subst(vals))
	case KApp:
		return p.App(p.InstantiateLevels(t.fn, vals), p.InstantiateLevels(t.arg, vals))
	case KAbs:
		return p.Abs(p.InstantiateLevels(t.dom, vals), p.InstantiateLevels(t.cod, vals))
	case KProd:
		return p.Prod(p.InstantiateLevels(t.dom, vals), p.InstantiateLevels(t.cod, vals))
	case KDecl:
		inst := make([]*level.Level, len(t.inst))
		for i, l := range t.inst {
			inst[i] = l.Subst(vals)
		}
		return p.Decl(t.name, inst)
	}
	return t
}
