// Package testutil provides golden-file comparison for the deterministic
// JSON this repository produces (structured error Reports, scenario
// verification summaries), reusing the same sorted-key marshaling the
// runtime itself uses so a golden fixture and a live Report are always
// compared on equal footing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/korelang/kore/internal/schema"
)

// UpdateGoldens controls whether CompareWithGolden overwrites its fixture
// instead of comparing against it. Set via UPDATE_GOLDENS=true go test ./...
var UpdateGoldens = os.Getenv("UPDATE_GOLDENS") == "true"

// GoldenPath returns the fixture path for a named comparison under the
// given feature's testdata directory.
func GoldenPath(feature, name string) string {
	return filepath.Join("testdata", feature, name+".golden.json")
}

// CompareWithGolden marshals actual the same deterministic way schema.
// MarshalDeterministic does, then compares the formatted bytes against the
// checked-in fixture (or writes it, when UpdateGoldens is set).
func CompareWithGolden(t *testing.T, feature, name string, actual any) {
	t.Helper()

	path := GoldenPath(feature, name)
	sorted, err := schema.MarshalDeterministic(actual)
	if err != nil {
		t.Fatalf("marshal golden data: %v", err)
	}
	formatted, err := schema.FormatJSON(sorted, false)
	if err != nil {
		t.Fatalf("format golden data: %v", err)
	}

	if UpdateGoldens {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create golden directory: %v", err)
		}
		if err := os.WriteFile(path, formatted, 0o644); err != nil {
			t.Fatalf("write golden file: %v", err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file does not exist: %s (run with UPDATE_GOLDENS=true to create)", path)
		}
		t.Fatalf("read golden file: %v", err)
	}
	if diff := cmp.Diff(string(want), string(formatted)); diff != "" {
		t.Errorf("golden mismatch for %s/%s (-want +got):\n%s", feature, name, diff)
	}
}
