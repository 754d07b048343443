package kernel

import (
	"testing"

	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAxiomAndLookup(t *testing.T) {
	e := New()
	prop := e.Pool.Sort(level.ZeroLevel)
	require.NoError(t, e.AddAxiom("Unit", 0, prop))

	decl, err := e.Lookup("Unit")
	require.NoError(t, err)
	assert.False(t, decl.HasBody())

	sum, err := e.Summarize("Unit")
	require.NoError(t, err)
	assert.Equal(t, "Unit", sum.Name)
	assert.False(t, sum.HasBody)
}

func TestAddDefinitionRejectsIllTyped(t *testing.T) {
	e := New()
	prop := e.Pool.Sort(level.ZeroLevel)
	typ1 := e.Pool.Sort(level.NewNat(1))
	// Body is Sort 1, whose type is Sort 2, not Prop: ill typed.
	err := e.AddDefinition("bad", 0, typ1, prop)
	require.Error(t, err)
	_, ok := errors.AsReport(err)
	assert.True(t, ok)

	_, lookupErr := e.Lookup("bad")
	require.Error(t, lookupErr, "a rejected definition must not be recorded")
}

func TestAddDefinitionAndInferType(t *testing.T) {
	e := New()
	prop := e.Pool.Sort(level.ZeroLevel)
	idTy := e.Pool.Prod(prop, e.Pool.Prod(e.Pool.Var(0), e.Pool.Var(1)))
	idBody := e.Pool.Abs(prop, e.Pool.Abs(e.Pool.Var(0), e.Pool.Var(0)))
	require.NoError(t, e.AddDefinition("id0", 0, idBody, idTy))

	ref := e.Pool.Decl("id0", nil)
	got, err := e.InferType(ref)
	require.NoError(t, err)
	assert.True(t, got.Equal(idTy))
	require.NoError(t, e.CheckType(ref, idTy))
}

func TestInstantiateUniversePolymorphicDecl(t *testing.T) {
	e := New()
	u0 := level.NewVar(0)
	sortU := e.Pool.Sort(u0)
	idTy := e.Pool.Prod(sortU, e.Pool.Prod(e.Pool.Var(0), e.Pool.Var(1)))
	idBody := e.Pool.Abs(sortU, e.Pool.Abs(e.Pool.Var(0), e.Pool.Var(0)))
	require.NoError(t, e.AddDefinition("id", 1, idBody, idTy))

	decl, err := e.Lookup("id")
	require.NoError(t, err)
	body, typ, err := e.Instantiate(decl, []*level.Level{level.NewNat(3)})
	require.NoError(t, err)
	assert.NotNil(t, body)
	assert.NotNil(t, typ)
}

func TestWhnfAndNormalForm(t *testing.T) {
	e := New()
	prop := e.Pool.Sort(level.ZeroLevel)
	app := e.Pool.App(e.Pool.Abs(prop, e.Pool.Var(0)), prop)
	assert.True(t, e.Whnf(app).Equal(prop))
	assert.True(t, e.NormalForm(app).Equal(prop))
}

func TestNamesPreservesInsertionOrder(t *testing.T) {
	e := New()
	prop := e.Pool.Sort(level.ZeroLevel)
	require.NoError(t, e.AddAxiom("B", 0, prop))
	require.NoError(t, e.AddAxiom("A", 0, prop))
	assert.Equal(t, []string{"B", "A"}, e.Names())
}
