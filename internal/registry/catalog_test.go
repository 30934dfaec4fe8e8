package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	seed := `{
		"Debate Team": {
			"description": "Argue both sides and win tournaments",
			"schedule": "Mondays, 3:30 PM - 5:00 PM",
			"max_participants": 8,
			"participants": ["lucas@mergington.edu"]
		},
		"Astronomy Club": {
			"description": "Stargazing and telescope nights",
			"schedule": "Fridays, 8:00 PM - 10:00 PM",
			"max_participants": 14
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	catalog, err := LoadCatalogFile(path)
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	// Entries load in name order.
	require.Equal(t, "Astronomy Club", catalog[0].Name)
	require.Equal(t, "Debate Team", catalog[1].Name)

	require.Equal(t, 14, catalog[0].MaxParticipants)
	require.NotNil(t, catalog[0].Participants)
	require.Empty(t, catalog[0].Participants)
	require.Equal(t, []string{"lucas@mergington.edu"}, catalog[1].Participants)
}

func TestLoadCatalogFileMissing(t *testing.T) {
	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "absent.json"))
	require.ErrorContains(t, err, "read seed catalog")
}

func TestLoadCatalogFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Debate Team": [`), 0o644))

	_, err := LoadCatalogFile(path)
	require.ErrorContains(t, err, "parse seed catalog")
}
