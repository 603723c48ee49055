package models

import (
	"errors"
	"time"

	"github.com/timshannon/bolthold"
)

// Snapshot operations. One record per source, replaced wholesale on save.

// LoadSnapshot returns the last persisted snapshot for the source, or nil on
// first run. A record that cannot be read back is as good as no record: the
// caller is expected to log the returned error and proceed with a nil
// snapshot rather than abort the cycle.
func (db *Database) LoadSnapshot(sourceID string) (*ProgramSnapshot, error) {
	var snap ProgramSnapshot
	err := db.store.Get(sourceID, &snap)
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveSnapshot persists a new snapshot with a fresh timestamp, atomically
// replacing any prior snapshot for the source.
func (db *Database) SaveSnapshot(sourceID string, films []Film) error {
	snap := &ProgramSnapshot{
		SourceID:  sourceID,
		Timestamp: time.Now(),
		Films:     films,
	}
	return db.store.Upsert(sourceID, snap)
}
