package history

import (
	"fmt"

	"github.com/illusions-app/history/internal/util"
)

// Bookmarks returns the persisted set of bookmarked snapshot IDs, empty
// when no bookmark document exists yet. A bookmark is orthogonal to the
// snapshot's kind; deleting a snapshot does not unbookmark it.
func (s *Store) Bookmarks() ([]string, error) {
	var ids []string
	if err := util.ReadJSON(s.fsys, s.bookmarksPath, &ids); err != nil {
		if !s.fsys.IsNotExist(err) {
			s.log.Warn("bookmark document unreadable, starting fresh", "path", s.bookmarksPath, "error", err)
		}
		return []string{}, nil
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ToggleBookmark flips membership of id in the bookmark set, persists
// the full set, and returns the new membership state. Not gated: the
// bookmark document is independent of the index and a lost update here
// only affects one pin, not data integrity.
func (s *Store) ToggleBookmark(id string) (bool, error) {
	ids, err := s.Bookmarks()
	if err != nil {
		return false, err
	}

	kept := ids[:0:0]
	found := false
	for _, b := range ids {
		if b == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		kept = append(kept, id)
	}

	if err := util.WriteJSON(s.fsys, s.bookmarksPath, kept); err != nil {
		return false, fmt.Errorf("write bookmarks: %w", err)
	}
	return !found, nil
}

// IsBookmarked reports whether id is currently in the bookmark set.
func (s *Store) IsBookmarked(id string) (bool, error) {
	ids, err := s.Bookmarks()
	if err != nil {
		return false, err
	}
	for _, b := range ids {
		if b == id {
			return true, nil
		}
	}
	return false, nil
}
