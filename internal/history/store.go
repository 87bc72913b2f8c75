package history

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/illusions-app/history/internal/checksum"
	"github.com/illusions-app/history/internal/config"
	"github.com/illusions-app/history/internal/fs"
)

// Store owns the history directory, the index document, and the
// bookmark document. No other component touches their persisted
// representations directly.
type Store struct {
	root string // workspace root
	dir  string // <root>/.illusions/history

	indexPath     string
	bookmarksPath string

	fsys fs.FS
	log  *slog.Logger
	gate *gate

	now   func() time.Time
	newID func() string
}

// Options allows optional dependency injection into NewStore.
type Options struct {
	FS     fs.FS
	Logger *slog.Logger
	Now    func() time.Time
}

// NewStore opens (or initializes) the snapshot history under root.
func NewStore(root string, opts *Options) (*Store, error) {
	s := &Store{
		root:          root,
		dir:           config.HistoryPath(root),
		indexPath:     config.IndexPath(root),
		bookmarksPath: config.BookmarksPath(root),
		fsys:          fs.NewOSFS(),
		log:           slog.Default(),
		gate:          newGate(),
		now:           time.Now,
		newID:         uuid.NewString,
	}
	if opts != nil {
		if opts.FS != nil {
			s.fsys = opts.FS
		}
		if opts.Logger != nil {
			s.log = opts.Logger
		}
		if opts.Now != nil {
			s.now = opts.Now
		}
	}

	if err := s.fsys.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir %q: %w", s.dir, err)
	}
	return s, nil
}

var (
	defaultStore *Store
	defaultOnce  sync.Once
	defaultErr   error
)

// Default returns a process-wide store rooted at the resolved workspace,
// constructed once. Prefer constructing a Store explicitly and injecting
// it; this accessor exists for caller convenience only.
func Default() (*Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = NewStore(config.ResolveWorkspaceRoot(), nil)
	})
	return defaultStore, defaultErr
}

// Root returns the workspace root the store was opened at.
func (s *Store) Root() string { return s.root }

// Dir returns the history directory holding all snapshot files.
func (s *Store) Dir() string { return s.dir }

// contentPath returns the on-disk path of an entry's content file.
func (s *Store) contentPath(filename string) string {
	return filepath.Join(s.dir, filename)
}

// CreateSnapshot durably records a point-in-time copy of content for
// sourceFile. An empty kind defaults to KindAuto; label is meaningful
// for milestones. The content file is written before the index is
// touched, so a failed write never leaves a dangling entry. Both
// retention policies run before the gate is released, so the index the
// caller next reads already reflects pruning.
func (s *Store) CreateSnapshot(sourceFile, content string, kind Kind, label string) (*Entry, error) {
	if kind == "" {
		kind = KindAuto
	}
	now := s.now()

	entry := Entry{
		ID:             s.newID(),
		Timestamp:      now.UnixMilli(),
		Filename:       buildFilename(sourceFile, now, kind),
		SourceFile:     sourceFile,
		Kind:           kind,
		Label:          label,
		CharacterCount: checksum.CharacterCount(content),
		ByteSize:       checksum.ByteSize(content),
		Checksum:       checksum.Digest(content),
	}

	if err := s.fsys.WriteFile(s.contentPath(entry.Filename), []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write snapshot %q: %w", entry.Filename, err)
	}

	release := s.gate.acquire()
	defer release()

	idx := s.loadIndex()
	idx.Snapshots = append([]Entry{entry}, idx.Snapshots...)
	if err := s.saveIndex(idx); err != nil {
		return nil, err
	}

	if err := s.pruneOldLocked(); err != nil {
		return nil, err
	}
	if err := s.pruneFileLocked(sourceFile); err != nil {
		return nil, err
	}

	return &entry, nil
}

// RestoreSnapshot returns the content recorded under id after
// recomputing its checksum. A mismatch fails with a CorruptionError;
// unverified content is never returned. The index is not mutated and
// the gate is not held: a restore racing a prune sees either the pre-
// or post-prune index and fails closed on a missing file.
func (s *Store) RestoreSnapshot(id string) (string, error) {
	entry, ok := s.findEntry(id)
	if !ok {
		return "", fmt.Errorf("restore %s: %w", id, ErrSnapshotNotFound)
	}

	data, err := s.fsys.ReadFile(s.contentPath(entry.Filename))
	if err != nil {
		return "", fmt.Errorf("read snapshot %q: %w", entry.Filename, err)
	}

	if actual := checksum.DigestBytes(data); actual != entry.Checksum {
		return "", &CorruptionError{
			ID:       entry.ID,
			Filename: entry.Filename,
			Expected: entry.Checksum,
			Actual:   actual,
		}
	}
	return string(data), nil
}

// SnapshotContent collapses RestoreSnapshot into content-or-absent.
// It performs no different validation.
func (s *Store) SnapshotContent(id string) (string, bool) {
	content, err := s.RestoreSnapshot(id)
	if err != nil {
		s.log.Debug("snapshot content unavailable", "id", id, "error", err)
		return "", false
	}
	return content, true
}

// Snapshots lists entries, optionally filtered to one source file
// (empty sourceFile means all), newest first. Legacy entries without a
// recorded kind get one inferred from the filename marker.
func (s *Store) Snapshots(sourceFile string) ([]Entry, error) {
	idx := s.loadIndex()

	out := make([]Entry, 0, len(idx.Snapshots))
	for _, e := range idx.Snapshots {
		if sourceFile != "" && e.SourceFile != sourceFile {
			continue
		}
		e.Kind = e.EffectiveKind()
		out = append(out, e)
	}
	sortNewestFirst(out)
	return out, nil
}

// DeleteSnapshot removes one entry and its content file. Deleting a
// milestone is allowed but must be explicit; an unknown id fails with
// ErrSnapshotNotFound and leaves the index unchanged. The content file
// delete is best-effort: a missing file is logged, not fatal.
func (s *Store) DeleteSnapshot(id string) error {
	release := s.gate.acquire()
	defer release()

	idx := s.loadIndex()
	pos := -1
	for i := range idx.Snapshots {
		if idx.Snapshots[i].ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrSnapshotNotFound)
	}

	entry := idx.Snapshots[pos]
	if err := s.fsys.Remove(s.contentPath(entry.Filename)); err != nil {
		s.log.Warn("snapshot file not removed", "filename", entry.Filename, "error", err)
	}

	idx.Snapshots = append(idx.Snapshots[:pos], idx.Snapshots[pos+1:]...)
	return s.saveIndex(idx)
}

// ShouldSnapshot reports whether the newest snapshot of sourceFile is
// older than minInterval (or no snapshot exists). The editor auto-save
// path asks this before creating an auto snapshot.
func (s *Store) ShouldSnapshot(sourceFile string, minInterval time.Duration) (bool, error) {
	entries, err := s.Snapshots(sourceFile)
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		return true, nil
	}
	return s.now().Sub(entries[0].Time()) >= minInterval, nil
}

// findEntry looks an entry up by id in the current index.
func (s *Store) findEntry(id string) (Entry, bool) {
	idx := s.loadIndex()
	for _, e := range idx.Snapshots {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
