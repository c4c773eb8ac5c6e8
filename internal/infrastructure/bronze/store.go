package bronze

import (
	"fmt"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"

	"github.com/statlake/pitchload/internal/domain/event"
)

// Store reads raw match payloads from the data root and writes bronze-layer
// parquet partitions under the lakehouse root.
type Store struct {
	dataRoot      string
	lakehouseRoot string
}

func NewStore(dataRoot, lakehouseRoot string) *Store {
	return &Store{dataRoot: dataRoot, lakehouseRoot: lakehouseRoot}
}

func (s *Store) eventsPath(matchID int64) string {
	return filepath.Join(s.dataRoot, "events", fmt.Sprintf("%d.json", matchID))
}

// ReadMatchEvents loads one match's raw event log. A missing file surfaces
// as a wrapped fs.ErrNotExist so callers can skip-and-count it.
func (s *Store) ReadMatchEvents(matchID int64) ([]event.RawEvent, error) {
	var events []event.RawEvent
	if err := s.readJSON(s.eventsPath(matchID), &events); err != nil {
		return nil, crerr.Wrapf(err, "read events for match %d", matchID)
	}
	return events, nil
}
