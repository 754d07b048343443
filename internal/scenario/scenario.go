// Package scenario runs the manifest-tracked fixture files (F11) against
// a fresh kernel and reports whether each one matches its recorded
// expectation, catching a scenario that has silently drifted out of sync
// with spec.md §8's behavior it is meant to pin down.
package scenario

import (
	"fmt"
	"path/filepath"

	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/kernel"
	"github.com/korelang/kore/internal/manifest"
	"github.com/korelang/kore/internal/pipeline"
)

// Result is the outcome of verifying one manifest entry.
type Result struct {
	Scenario manifest.Scenario
	Pass     bool
	Detail   string
}

// Verify loads manifestPath and runs each scenario's fixture (resolved
// relative to the manifest's directory) against its own fresh kernel
// environment, comparing the outcome against what the manifest recorded.
func Verify(manifestPath string) ([]Result, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(manifestPath)

	results := make([]Result, 0, len(m.Scenarios))
	for _, s := range m.Scenarios {
		results = append(results, verifyOne(s, filepath.Join(dir, s.File)))
	}
	return results, nil
}

func verifyOne(s manifest.Scenario, fixturePath string) Result {
	env := kernel.New()
	_, err := pipeline.RunFile(fixturePath, env)

	switch s.Outcome {
	case manifest.OutcomeOK:
		if err != nil {
			return Result{Scenario: s, Pass: false, Detail: fmt.Sprintf("expected success, got error: %v", err)}
		}
		return Result{Scenario: s, Pass: true}

	case manifest.OutcomeError:
		if err == nil {
			return Result{Scenario: s, Pass: false, Detail: "expected an error, got success"}
		}
		rep, ok := errors.AsReport(err)
		if !ok {
			return Result{Scenario: s, Pass: false, Detail: fmt.Sprintf("error was not a structured Report: %v", err)}
		}
		if rep.Code != s.ErrorCode {
			return Result{Scenario: s, Pass: false, Detail: fmt.Sprintf("expected error code %s, got %s", s.ErrorCode, rep.Code)}
		}
		return Result{Scenario: s, Pass: true}
	}
	return Result{Scenario: s, Pass: false, Detail: fmt.Sprintf("unknown outcome %q", s.Outcome)}
}
