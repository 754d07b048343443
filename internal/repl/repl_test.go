package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalancedTracksParensAndBraces(t *testing.T) {
	assert.True(t, balanced("def id (A: Prop) (x: A) := x"))
	assert.False(t, balanced("def id (A: Prop"))
	assert.True(t, balanced("def id.{u} (A: Sort u) (x: A) := x"))
	assert.False(t, balanced("def id.{u (A: Sort u) (x: A) := x"))
}

func TestRunPrintsDeclaredResult(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.run("def idProp (x: Prop) := x", &buf)
	out := buf.String()
	assert.Contains(t, out, "idProp")
}

func TestRunPrintsStructuredErrorOnFailure(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.run("def bad := nonexistent", &buf)
	out := buf.String()
	assert.Contains(t, out, "ELB001")
	assert.Contains(t, out, "elaborate")
}

func TestHandleMetaResetClearsEnvironment(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.run("def idProp (x: Prop) := x", &buf)
	assert.Contains(t, strings.Join(r.env.Names(), ","), "idProp")

	buf.Reset()
	quit := r.handleMeta(":reset", &buf)
	assert.False(t, quit)
	assert.Empty(t, r.env.Names())
}

func TestHandleMetaQuitSignalsExit(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	assert.True(t, r.handleMeta(":quit", &buf))
}

func TestEvalTraceEmitsSteps(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.run("def id.{u} (A: Sort u) (x: A) := x", &buf)

	r.Trace = true
	buf.Reset()
	r.run("eval id.{0} Prop (fun (P: Prop) => P)", &buf)
	assert.Contains(t, buf.String(), "trace")
}
