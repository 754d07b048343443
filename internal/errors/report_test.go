package errors

import (
	"strings"
	"testing"

	"github.com/korelang/kore/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsReportRoundTrips(t *testing.T) {
	err := Kernelf(KNL006, "type mismatch: expected %s, got %s", "Prop", "Type")
	rep, ok := AsReport(err)
	require.True(t, ok)
	assert.Equal(t, KNL006, rep.Code)
	assert.Equal(t, "kernel", rep.Phase)
	assert.Equal(t, "kore.error/v1", rep.Schema)
}

func TestPhaseConstructorsTagDistinctPhases(t *testing.T) {
	cases := []struct {
		err       error
		wantPhase string
	}{
		{Lexf(LEX001, "bad char"), "lex"},
		{Parsef(PAR001, "bad token"), "parse"},
		{Elaboratef(ELB001, "unbound"), "elaborate"},
		{Kernelf(KNL001, "unbound var"), "kernel"},
	}
	for _, c := range cases {
		rep, ok := AsReport(c.err)
		require.True(t, ok)
		assert.Equal(t, c.wantPhase, rep.Phase)
	}
}

func TestToJSONIsDeterministicAndSorted(t *testing.T) {
	rep := &Report{Schema: "kore.error/v1", Code: KNL006, Phase: "kernel", Message: "mismatch"}
	got, err := rep.ToJSON(true)
	require.NoError(t, err)

	codeIdx := strings.Index(got, `"code"`)
	messageIdx := strings.Index(got, `"message"`)
	schemaIdx := strings.Index(got, `"schema"`)
	assert.True(t, codeIdx < messageIdx && messageIdx < schemaIdx, "keys not sorted: %s", got)

	got2, err := rep.ToJSON(true)
	require.NoError(t, err)
	assert.Equal(t, got, got2)
}

func TestReportMatchesGoldenJSON(t *testing.T) {
	rep := &Report{Schema: "kore.error/v1", Code: KNL006, Phase: "kernel", Message: "type mismatch: expected Prop, got Type"}
	testutil.CompareWithGolden(t, "errors", "kernelf_type_mismatch", rep)
}

func TestAsReportFailsForPlainError(t *testing.T) {
	_, ok := AsReport(assertPlainError())
	assert.False(t, ok)
}

func assertPlainError() error {
	return &plainError{}
}

type plainError struct{}

func (e *plainError) Error() string { return "plain" }
