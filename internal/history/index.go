package history

import (
	"fmt"

	"github.com/illusions-app/history/internal/config"
	"github.com/illusions-app/history/internal/util"
)

// Index is the single source of truth for which snapshots exist.
// It is rewritten whole on every mutation.
type Index struct {
	Snapshots     []Entry `json:"snapshots"`
	MaxSnapshots  int     `json:"maxSnapshots"`
	RetentionDays int     `json:"retentionDays"`
}

func newIndex() *Index {
	return &Index{
		Snapshots:     []Entry{},
		MaxSnapshots:  config.DefaultMaxSnapshots,
		RetentionDays: config.DefaultRetentionDays,
	}
}

// loadIndex reads the index document, lazily creating defaults when the
// file is missing or unparseable. A corrupted index is indistinguishable
// from an absent one; the content files stay on disk either way.
func (s *Store) loadIndex() *Index {
	var idx Index
	if err := util.ReadJSON(s.fsys, s.indexPath, &idx); err != nil {
		if !s.fsys.IsNotExist(err) {
			s.log.Warn("history index unreadable, starting fresh", "path", s.indexPath, "error", err)
		}
		return newIndex()
	}
	if idx.MaxSnapshots <= 0 {
		idx.MaxSnapshots = config.DefaultMaxSnapshots
	}
	if idx.RetentionDays <= 0 {
		idx.RetentionDays = config.DefaultRetentionDays
	}
	if idx.Snapshots == nil {
		idx.Snapshots = []Entry{}
	}
	return &idx
}

// saveIndex rewrites the index document in full, newest entry first.
func (s *Store) saveIndex(idx *Index) error {
	sortNewestFirst(idx.Snapshots)
	if err := util.WriteJSON(s.fsys, s.indexPath, idx); err != nil {
		return fmt.Errorf("write history index: %w", err)
	}
	return nil
}
