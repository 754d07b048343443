package manifest

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenarioManifest(t *testing.T) {
	m, err := Load("../../testdata/scenarios/manifest.yaml")
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, m.Schema)
	assert.Len(t, m.Scenarios, 7)
}

func TestValidateRejectsDuplicateNames(t *testing.T) {
	m := &Manifest{
		Schema: SchemaVersion,
		Scenarios: []Scenario{
			{Name: "dup", File: "a.kore", Outcome: OutcomeOK},
			{Name: "dup", File: "b.kore", Outcome: OutcomeOK},
		},
	}
	assert.Error(t, m.Validate())
}

func TestValidateRequiresErrorCodeOnErrorOutcome(t *testing.T) {
	m := &Manifest{
		Schema:    SchemaVersion,
		Scenarios: []Scenario{{Name: "x", File: "a.kore", Outcome: OutcomeError}},
	}
	assert.Error(t, m.Validate())
}

func TestValidateRejectsErrorCodeOnOkOutcome(t *testing.T) {
	m := &Manifest{
		Schema:    SchemaVersion,
		Scenarios: []Scenario{{Name: "x", File: "a.kore", Outcome: OutcomeOK, ErrorCode: "KNL001"}},
	}
	assert.Error(t, m.Validate())
}

func TestLoadRejectsUnsupportedSchema(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/manifest.yaml"
	require.NoError(t, os.WriteFile(path, []byte("schema: kore.scenario/v0\nscenarios: []\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
