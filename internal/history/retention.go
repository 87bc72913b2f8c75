package history

import (
	"time"

	"github.com/illusions-app/history/internal/config"
)

// PruneOldSnapshots applies the global retention policy under the gate:
// non-milestone entries ranked past the global cap or older than the
// retention window are evicted. Milestones are never touched.
func (s *Store) PruneOldSnapshots() error {
	release := s.gate.acquire()
	defer release()
	return s.pruneOldLocked()
}

// PruneFileSnapshots applies the per-file policy under the gate: among
// one source file's auto snapshots, only the newest PerFileAutoCap
// survive. Manual and milestone entries are never counted nor removed.
func (s *Store) PruneFileSnapshots(sourceFile string) error {
	release := s.gate.acquire()
	defer release()
	return s.pruneFileLocked(sourceFile)
}

// pruneOldLocked runs the global policy. Caller holds the gate.
func (s *Store) pruneOldLocked() error {
	idx := s.loadIndex()

	var milestones, others []Entry
	for _, e := range idx.Snapshots {
		if e.EffectiveKind() == KindMilestone {
			milestones = append(milestones, e)
		} else {
			others = append(others, e)
		}
	}
	sortNewestFirst(others)

	maxAge := time.Duration(idx.RetentionDays) * 24 * time.Hour
	now := s.now()

	kept := others[:0:0]
	var evicted []Entry
	for rank, e := range others {
		if rank >= idx.MaxSnapshots || now.Sub(e.Time()) > maxAge {
			evicted = append(evicted, e)
			continue
		}
		kept = append(kept, e)
	}
	if len(evicted) == 0 {
		return nil
	}

	s.removeContentFiles(evicted)

	idx.Snapshots = append(milestones, kept...)
	return s.saveIndex(idx)
}

// pruneFileLocked runs the per-file auto cap. Caller holds the gate.
func (s *Store) pruneFileLocked(sourceFile string) error {
	idx := s.loadIndex()

	var autos []Entry
	for _, e := range idx.Snapshots {
		if e.SourceFile == sourceFile && e.EffectiveKind() == KindAuto {
			autos = append(autos, e)
		}
	}
	if len(autos) <= config.PerFileAutoCap {
		return nil
	}

	sortNewestFirst(autos)
	excess := autos[config.PerFileAutoCap:]

	s.removeContentFiles(excess)

	doomed := make(map[string]struct{}, len(excess))
	for _, e := range excess {
		doomed[e.ID] = struct{}{}
	}
	kept := idx.Snapshots[:0:0]
	for _, e := range idx.Snapshots {
		if _, gone := doomed[e.ID]; !gone {
			kept = append(kept, e)
		}
	}
	idx.Snapshots = kept
	return s.saveIndex(idx)
}

// removeContentFiles best-effort deletes evicted content files. A
// failed cleanup must not block removing the entries from the index.
func (s *Store) removeContentFiles(entries []Entry) {
	for _, e := range entries {
		if err := s.fsys.Remove(s.contentPath(e.Filename)); err != nil && !s.fsys.IsNotExist(err) {
			s.log.Warn("evicted snapshot file not removed", "filename", e.Filename, "error", err)
		}
	}
}
