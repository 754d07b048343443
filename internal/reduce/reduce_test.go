package reduce

import (
	"testing"

	"github.com/korelang/kore/internal/kenv"
	"github.com/korelang/kore/internal/level"
	"github.com/korelang/kore/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhnfBeta(t *testing.T) {
	p := term.NewPool()
	env := kenv.New()
	m := New(p, env)

	prop := p.Sort(level.ZeroLevel)
	// (fun _: Prop => Var0) applied to Prop whnf's to Prop.
	id := p.Abs(prop, p.Var(0))
	app := p.App(id, prop)
	assert.True(t, m.Whnf(app).Equal(prop))
}

func TestWhnfStopsAtNeutralApp(t *testing.T) {
	p := term.NewPool()
	env := kenv.New()
	m := New(p, env)

	prop := p.Sort(level.ZeroLevel)
	stuck := p.App(p.Var(0), prop)
	assert.True(t, m.Whnf(stuck).Equal(stuck))
}

func TestWhnfDeltaUnfoldsDefinitions(t *testing.T) {
	p := term.NewPool()
	env := kenv.New()
	m := New(p, env)

	prop := p.Sort(level.ZeroLevel)
	require.NoError(t, env.Define("myProp", 0, prop, p.Sort(level.NewNat(1))))

	ref := p.Decl("myProp", nil)
	assert.True(t, m.Whnf(ref).Equal(prop))
}

func TestWhnfAxiomIsStuck(t *testing.T) {
	p := term.NewPool()
	env := kenv.New()
	m := New(p, env)

	typ := p.Sort(level.NewNat(1))
	require.NoError(t, env.Declare("Ax", 0, typ))
	ref := p.Decl("Ax", nil)
	assert.True(t, m.Whnf(ref).Equal(ref))
}

func TestNormalFormRecursesUnderBinders(t *testing.T) {
	p := term.NewPool()
	env := kenv.New()
	m := New(p, env)

	prop := p.Sort(level.ZeroLevel)
	id := p.Abs(prop, p.Var(0))
	// A body `(id Prop)` inside a lambda reduces under the binder too.
	inner := p.App(p.Lift(id, 1, 0), p.Var(0))
	lam := p.Abs(prop, inner)
	nf := m.NormalForm(lam)
	want := p.Abs(prop, p.Var(0))
	assert.True(t, nf.Equal(want), "got %s want %s", nf, want)
}

func TestMultiArgBetaThroughArgStack(t *testing.T) {
	p := term.NewPool()
	env := kenv.New()
	m := New(p, env)

	prop := p.Sort(level.ZeroLevel)
	// K = fun a b => a; K Prop (fun _:Prop => Var0) whnf's to Prop.
	k := p.Abs(prop, p.Abs(prop, p.Var(1)))
	app := p.App(p.App(k, prop), p.Abs(prop, p.Var(0)))
	assert.True(t, m.Whnf(app).Equal(prop))
}
