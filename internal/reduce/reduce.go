// Package reduce implements the reducer (C4): weak-head normalization by a
// small-step machine with an argument stack, full normalization, and the
// delta-unfolding step that consults the global environment.
package reduce

import (
	"github.com/korelang/kore/internal/kenv"
	"github.com/korelang/kore/internal/term"
)

// Machine drives whnf/nf reduction against one term pool and environment.
// It holds no mutable state of its own; a Machine value may be reused
// freely across calls and shared by concurrent readers once wrapped by
// the runtime package's concurrency discipline (spec §5).
type Machine struct {
	Pool *term.Pool
	Env  *kenv.Env

	// Trace, if non-nil, is called with the term before and after each
	// beta or delta step Whnf takes. Used by the CLI's --trace flag to
	// print a reduction trace for debugging nontermination; nil by
	// default, so tracing costs nothing when unused.
	Trace func(step string, before, after *term.Term)
}

// New creates a reduction machine over pool and env.
func New(pool *term.Pool, env *kenv.Env) *Machine {
	return &Machine{Pool: pool, Env: env}
}

// unfold delta-unfolds a Decl node if its declaration has a body, per
// spec §4.4's delta rule. It reports ok=false for axioms (stuck) and for
// names the environment cannot resolve (the caller already validated
// Decl references during type checking; whnf on an ill-formed term after
// that point is a kernel-internal invariant violation, not a recoverable
// user error, so unfold simply fails closed rather than erroring).
func (m *Machine) unfold(t *term.Term) (*term.Term, bool) {
	decl, err := m.Env.Lookup(t.DeclName())
	if err != nil || !decl.HasBody() {
		return nil, false
	}
	body, _, err := kenv.Instantiate(m.Pool, decl, t.DeclInstance())
	if err != nil {
		return nil, false
	}
	return body, true
}

// Whnf reduces t to weak-head normal form: it is repeatedly rewritten
// until its head constructor is Sort, Prod, Abs, or an App stuck on a Var
// or a non-unfoldable Decl. Reduction uses an explicit argument stack so
// that a chain of applications `f a1 a2 a3` is inspected head-first
// without re-walking already-seen spine nodes.
func (m *Machine) Whnf(t *term.Term) *term.Term {
	var stack []*term.Term // innermost-first arguments applied to the head
	head := t
	for {
		switch head.Kind() {
		case term.KApp:
			stack = append(stack, head.AppArg())
			head = head.AppFunc()
			continue

		case term.KAbs:
			if len(stack) == 0 {
				return head
			}
			// beta: pop the innermost argument and substitute it into the body.
			arg := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			before := head
			head = m.Pool.SubstTop(head.Body(), arg)
			if m.Trace != nil {
				m.Trace("beta", before, head)
			}
			continue

		case term.KDecl:
			if body, ok := m.unfold(head); ok {
				if m.Trace != nil {
					m.Trace("delta", head, body)
				}
				head = body
				continue
			}
			return rebuild(m.Pool, head, stack)

		default: // Var, Sort: neutral or canonical heads, stack stays.
			return rebuild(m.Pool, head, stack)
		}
	}
}

// rebuild re-applies a stuck head to its remaining argument stack
// (outermost-last became innermost-first during the walk, so we reapply
// in reverse to recover the original application order).
func rebuild(pool *term.Pool, head *term.Term, stack []*term.Term) *term.Term {
	for i := len(stack) - 1; i >= 0; i-- {
		head = pool.App(head, stack[i])
	}
	return head
}

// NormalForm fully normalizes t: whnf at the top, then recursively under
// binders and inside applications. Exposed through the kernel API's
// NormalForm; the pipeline's `eval` command and conversion use only whnf.
func (m *Machine) NormalForm(t *term.Term) *term.Term {
	w := m.Whnf(t)
	switch w.Kind() {
	case term.KApp:
		return m.Pool.App(m.NormalForm(w.AppFunc()), m.NormalForm(w.AppArg()))
	case term.KAbs:
		return m.Pool.Abs(m.NormalForm(w.Domain()), m.NormalForm(w.Body()))
	case term.KProd:
		return m.Pool.Prod(m.NormalForm(w.Domain()), m.NormalForm(w.Codomain()))
	default: // Var, Sort, stuck Decl
		return w
	}
}
