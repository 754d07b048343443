package parser

import (
	"testing"

	"github.com/korelang/kore/internal/ast"
	"github.com/korelang/kore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) ast.Command {
	t.Helper()
	cmds, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	return cmds[0]
}

func TestParseUniversePolymorphicIdentity(t *testing.T) {
	cmd := parseOne(t, "def id.{u} (A: Sort u) (x: A) := x")
	def, ok := cmd.(ast.Define)
	require.True(t, ok)
	assert.Equal(t, "id", def.Name)
	assert.Equal(t, []string{"u"}, def.UnivParams)
	require.Len(t, def.Args, 2)
	assert.Equal(t, "A", def.Args[0].Name)
	assert.Equal(t, "x", def.Args[1].Name)

	body, ok := def.Body.(ast.TVar)
	require.True(t, ok)
	assert.Equal(t, "x", body.Name)
}

func TestParseFunBinderGroupChain(t *testing.T) {
	cmd := parseOne(t, "check fun (A: Prop) (x y: A) => x : Prop")
	ct, ok := cmd.(ast.CheckType)
	require.True(t, ok)

	abs, ok := ct.Term.(ast.TAbs)
	require.True(t, ok)
	assert.Equal(t, "A", abs.Param)
	inner, ok := abs.Body.(ast.TAbs)
	require.True(t, ok)
	assert.Equal(t, "x", inner.Param)
}

func TestParseNonDependentArrowIsRightAssociative(t *testing.T) {
	cmd := parseOne(t, "check Prop -> Prop -> Prop : Prop")
	ct := cmd.(ast.CheckType)
	outer, ok := ct.Term.(ast.TProd)
	require.True(t, ok)
	assert.Equal(t, "_", outer.Param)
	inner, ok := outer.Codomain.(ast.TProd)
	require.True(t, ok)
	assert.Equal(t, "_", inner.Param)
}

func TestParseApplicationIsLeftAssociative(t *testing.T) {
	cmd := parseOne(t, "eval f a b")
	ev := cmd.(ast.Eval)
	outer, ok := ev.Term.(ast.TApp)
	require.True(t, ok)
	inner, ok := outer.Fn.(ast.TApp)
	require.True(t, ok)
	assert.Equal(t, "f", inner.Fn.(ast.TVar).Name)
	assert.Equal(t, "a", inner.Arg.(ast.TVar).Name)
	assert.Equal(t, "b", outer.Arg.(ast.TVar).Name)
}

func TestParseTypeKSugar(t *testing.T) {
	cmd := parseOne(t, "eval Type 2")
	ev := cmd.(ast.Eval)
	sort, ok := ev.Term.(ast.TSort)
	require.True(t, ok)
	plus, ok := sort.Level.(ast.LEPlus)
	require.True(t, ok)
	assert.Equal(t, 1, plus.N)
	assert.Equal(t, ast.LENat{N: 2}, plus.Base)
}

func TestParseUniverseInstanceList(t *testing.T) {
	cmd := parseOne(t, "eval K.{0, 1} Prop Prop")
	ev := cmd.(ast.Eval)
	app := ev.Term.(ast.TApp).Fn.(ast.TApp)
	ref := app.Fn.(ast.TRef)
	assert.Equal(t, "K", ref.Name)
	require.Len(t, ref.Levels, 2)
	assert.Equal(t, ast.LENat{N: 0}, ref.Levels[0])
	assert.Equal(t, ast.LENat{N: 1}, ref.Levels[1])
}

func TestParseMaxLevelForm(t *testing.T) {
	cmd := parseOne(t, "eval Sort max(1, 2)")
	sort := cmd.(ast.Eval).Term.(ast.TSort)
	m, ok := sort.Level.(ast.LEMax)
	require.True(t, ok)
	assert.Equal(t, ast.LENat{N: 1}, m.Left)
	assert.Equal(t, ast.LENat{N: 2}, m.Right)
}

func TestParseImportFileList(t *testing.T) {
	cmd := parseOne(t, "import Prelude Nat")
	imp := cmd.(ast.Import)
	assert.Equal(t, []string{"Prelude", "Nat"}, imp.Files)
}

func TestParseSearch(t *testing.T) {
	cmd := parseOne(t, "search id")
	s := cmd.(ast.Search)
	assert.Equal(t, "id", s.Name)
}

func TestParseUnexpectedTokenIsPAR001(t *testing.T) {
	_, err := Parse([]byte(":= x"))
	require.Error(t, err)
	rep, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, errors.PAR001, rep.Code)
}

func TestParseUnterminatedGroupIsPAR002(t *testing.T) {
	_, err := Parse([]byte("eval (Prop"))
	require.Error(t, err)
	rep, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, errors.PAR002, rep.Code)
}

func TestParsePlainParenthesizedTermIsNotMistakenForBinderGroup(t *testing.T) {
	cmd := parseOne(t, "eval (f a)")
	ev := cmd.(ast.Eval)
	app, ok := ev.Term.(ast.TApp)
	require.True(t, ok)
	assert.Equal(t, "f", app.Fn.(ast.TVar).Name)
}
