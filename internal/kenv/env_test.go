package kenv

import (
	"testing"

	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/level"
	"github.com/korelang/kore/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareAndLookup(t *testing.T) {
	p := term.NewPool()
	e := New()
	typ := p.Sort(level.ZeroLevel)
	require.NoError(t, e.Declare("A", 0, typ))

	d, err := e.Lookup("A")
	require.NoError(t, err)
	assert.Equal(t, "A", d.Name)
	assert.False(t, d.HasBody())
}

func TestDuplicateDeclaration(t *testing.T) {
	p := term.NewPool()
	e := New()
	typ := p.Sort(level.ZeroLevel)
	require.NoError(t, e.Declare("A", 0, typ))
	err := e.Declare("A", 0, typ)
	require.Error(t, err)
	rep, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, errors.KNL007, rep.Code)
}

func TestUnknownDeclaration(t *testing.T) {
	e := New()
	_, err := e.Lookup("nope")
	require.Error(t, err)
	rep, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, errors.KNL002, rep.Code)
}

func TestInstantiateArityMismatch(t *testing.T) {
	p := term.NewPool()
	e := New()
	u0 := level.NewVar(0)
	require.NoError(t, e.Declare("id", 1, p.Sort(u0)))
	d, _ := e.Lookup("id")

	_, _, err := Instantiate(p, d, nil)
	require.Error(t, err)
	rep, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, errors.KNL003, rep.Code)
}

func TestInstantiateSubstitutesLevels(t *testing.T) {
	p := term.NewPool()
	e := New()
	u0 := level.NewVar(0)
	require.NoError(t, e.Declare("A", 1, p.Sort(u0)))
	d, _ := e.Lookup("A")

	_, typ, err := Instantiate(p, d, []*level.Level{level.NewNat(2)})
	require.NoError(t, err)
	assert.True(t, typ.Equal(p.Sort(level.NewNat(2))))
}

func TestInsertionOrderPreserved(t *testing.T) {
	p := term.NewPool()
	e := New()
	typ := p.Sort(level.ZeroLevel)
	require.NoError(t, e.Declare("C", 0, typ))
	require.NoError(t, e.Declare("A", 0, typ))
	require.NoError(t, e.Declare("B", 0, typ))
	assert.Equal(t, []string{"C", "A", "B"}, e.Names())
}
