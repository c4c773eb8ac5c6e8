package bronze

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/statlake/pitchload/internal/domain/match"
)

const matchDateLayout = "2006-01-02"

type competitionEntry struct {
	CompetitionID int64 `json:"competition_id"`
	SeasonID      int64 `json:"season_id"`
}

type matchEntry struct {
	MatchID   int64  `json:"match_id"`
	MatchDate string `json:"match_date"`
}

// BuildManifest walks the raw data root (competitions.json, then one match
// list per competition/season) and records which matches have event payloads
// on disk. Missing per-season match lists are skipped and counted; an
// unreadable competitions.json is fatal because nothing can run without it.
func (s *Store) BuildManifest() (match.Manifest, error) {
	var competitions []competitionEntry
	if err := s.readJSON(filepath.Join(s.dataRoot, "competitions.json"), &competitions); err != nil {
		return match.Manifest{}, crerr.Wrap(err, "read competitions registry")
	}

	manifest := match.Manifest{}
	for _, comp := range competitions {
		path := filepath.Join(s.dataRoot, "matches",
			fmt.Sprintf("%d", comp.CompetitionID),
			fmt.Sprintf("%d.json", comp.SeasonID))

		var entries []matchEntry
		if err := s.readJSON(path, &entries); err != nil {
			if crerr.Is(err, fs.ErrNotExist) {
				manifest.MissingMatches++
				continue
			}
			return match.Manifest{}, crerr.Wrapf(err, "read match list for competition %d season %d",
				comp.CompetitionID, comp.SeasonID)
		}

		for _, entry := range entries {
			date, err := time.Parse(matchDateLayout, entry.MatchDate)
			if err != nil {
				manifest.MissingDates++
				continue
			}

			manifest.Matches = append(manifest.Matches, match.Match{
				CompetitionID: comp.CompetitionID,
				SeasonID:      comp.SeasonID,
				MatchID:       entry.MatchID,
				Date:          date,
				HasEvents:     fileExists(s.eventsPath(entry.MatchID)),
				HasLineups:    fileExists(filepath.Join(s.dataRoot, "lineups", fmt.Sprintf("%d.json", entry.MatchID))),
			})
		}
	}

	// Partition order drives the bronze flush boundaries downstream.
	sort.SliceStable(manifest.Matches, func(i, j int) bool {
		a, b := manifest.Matches[i], manifest.Matches[j]
		if a.CompetitionID != b.CompetitionID {
			return a.CompetitionID < b.CompetitionID
		}
		if a.SeasonID != b.SeasonID {
			return a.SeasonID < b.SeasonID
		}
		return a.MatchID < b.MatchID
	})

	return manifest, nil
}

func (s *Store) readJSON(path string, target any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return crerr.Wrapf(err, "read %s", path)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode %s", path)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
