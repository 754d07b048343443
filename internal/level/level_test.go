package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalNats(t *testing.T) {
	assert.Equal(t, "0", ZeroLevel.String())
	assert.Equal(t, "1", NewSucc(ZeroLevel).String())
	assert.Equal(t, "3", NewNat(3).String())
}

func TestSuccPushesIntoMax(t *testing.T) {
	m := NewMax(NewVar(0), NewNat(1))
	s := NewSucc(m)
	// succ(max(u0, 1)) == max(u0+1, 2)
	want := NewMax(NewSucc(NewVar(0)), NewNat(2))
	assert.True(t, s.Equal(want), "got %s want %s", s, want)
}

func TestMaxDedupAndDomination(t *testing.T) {
	a := NewVar(0)
	assert.True(t, NewMax(a, a).Equal(a))

	// max(n, 0) dominates to n for concrete n > 0
	assert.True(t, NewMax(NewNat(2), NewNat(0)).Equal(NewNat(2)))

	// max(u0, u0+1) == u0+1
	succ := NewSucc(a)
	assert.True(t, NewMax(a, succ).Equal(succ))
}

func TestIMaxWithZero(t *testing.T) {
	require.True(t, NewIMax(NewNat(5), ZeroLevel).Equal(ZeroLevel))
}

func TestIMaxWithSucc(t *testing.T) {
	a := NewVar(0)
	got := NewIMax(a, NewSucc(NewVar(1)))
	want := NewMax(a, NewSucc(NewVar(1)))
	assert.True(t, got.Equal(want))
}

func TestIMaxDistributesOverMax(t *testing.T) {
	a := NewVar(0)
	b := NewVar(1)
	c := NewVar(2)
	got := NewIMax(a, NewMax(b, c))
	want := NewMax(NewIMax(a, b), NewIMax(a, c))
	assert.True(t, got.Equal(want))
}

func TestDominationDecidable(t *testing.T) {
	a := NewVar(0)
	assert.True(t, Dominates(NewSucc(a), a))
	assert.False(t, Dominates(a, NewSucc(a)))
	assert.True(t, Dominates(NewMax(a, NewNat(3)), NewNat(2)))
}

func TestEqualityByMutualDomination(t *testing.T) {
	a := NewVar(0)
	l1 := NewMax(a, NewNat(0))
	l2 := a
	assert.True(t, l1.Equal(l2))
}

func TestSubst(t *testing.T) {
	u0 := NewVar(0)
	lvl := NewSucc(NewMax(u0, NewNat(1)))
	out := lvl.Subst([]*Level{NewNat(4)})
	assert.True(t, out.Equal(NewNat(5)), "got %s", out)
}

func TestCanonIdempotent(t *testing.T) {
	lvl := NewIMax(NewVar(0), NewMax(NewVar(1), NewSucc(NewVar(2))))
	again := lvl.Subst([]*Level{NewVar(0), NewVar(1), NewVar(2)})
	assert.True(t, lvl.Equal(again))
}
