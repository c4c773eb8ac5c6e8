package bronze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuildManifest(t *testing.T) {
	dataRoot := t.TempDir()

	writeFile(t, filepath.Join(dataRoot, "competitions.json"),
		`[{"competition_id":11,"season_id":90},{"competition_id":2,"season_id":44}]`)
	writeFile(t, filepath.Join(dataRoot, "matches", "11", "90.json"),
		`[{"match_id":100,"match_date":"2004-02-01"},{"match_id":101,"match_date":"2004-02-08"},{"match_id":102,"match_date":"not-a-date"}]`)
	// competition 2 has no match list: skipped and counted.
	writeFile(t, filepath.Join(dataRoot, "events", "100.json"), `[]`)

	store := NewStore(dataRoot, t.TempDir())
	manifest, err := store.BuildManifest()
	require.NoError(t, err)

	require.Len(t, manifest.Matches, 2)
	require.Equal(t, 1, manifest.MissingMatches)
	require.Equal(t, 1, manifest.MissingDates)

	first := manifest.Matches[0]
	require.EqualValues(t, 100, first.MatchID)
	require.True(t, first.HasEvents)
	require.False(t, first.HasLineups)
	require.Equal(t, "2004-02-01", first.Date.Format("2006-01-02"))

	require.False(t, manifest.Matches[1].HasEvents)
}

func TestBuildManifestMissingRegistryIsFatal(t *testing.T) {
	store := NewStore(t.TempDir(), t.TempDir())
	_, err := store.BuildManifest()
	require.Error(t, err)
}

func TestReadMatchEvents(t *testing.T) {
	dataRoot := t.TempDir()
	writeFile(t, filepath.Join(dataRoot, "events", "7.json"),
		`[{"id":"e1","minute":3,"type":{"id":30,"name":"Pass"},"team":{"id":1,"name":"Home"}}]`)

	store := NewStore(dataRoot, t.TempDir())

	events, err := store.ReadMatchEvents(7)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Pass", events[0].TypeName())
	require.Equal(t, "Home", events[0].TeamName())
	require.EqualValues(t, 3, events[0].MinuteOrZero())

	_, err = store.ReadMatchEvents(8)
	require.Error(t, err)
}
