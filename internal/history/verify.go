package history

import (
	"golang.org/x/exp/mmap"

	"github.com/illusions-app/history/internal/checksum"
	"github.com/illusions-app/history/internal/util"
)

// VerifyStatus indicates the state of a snapshot file on disk.
type VerifyStatus int

const (
	VerifyOK VerifyStatus = iota
	VerifyMissing
	VerifyDamaged
)

func (s VerifyStatus) String() string {
	switch s {
	case VerifyOK:
		return "ok"
	case VerifyMissing:
		return "missing"
	default:
		return "damaged"
	}
}

// VerifyResult is the outcome of checking one snapshot.
type VerifyResult struct {
	Entry  Entry
	Status VerifyStatus
}

// VerifyAll recomputes the checksum of every indexed snapshot and
// reports mismatches and missing files. Content files are memory-mapped
// for reading, so this requires an OS-backed store. Results come back
// in index order, newest first.
func (s *Store) VerifyAll() ([]VerifyResult, error) {
	entries, err := s.Snapshots("")
	if err != nil {
		return nil, err
	}

	results := make([]VerifyResult, len(entries))
	idxs := make([]int, len(entries))
	for i := range idxs {
		idxs[i] = i
	}

	err = util.Parallel(idxs, util.WorkerCount(), func(i int) error {
		results[i] = VerifyResult{Entry: entries[i], Status: s.verifyEntry(entries[i])}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// verifyEntry checks a single snapshot file against its recorded checksum.
func (s *Store) verifyEntry(e Entry) VerifyStatus {
	path := s.contentPath(e.Filename)
	if !s.fsys.Exists(path) {
		return VerifyMissing
	}

	r, err := mmap.Open(path)
	if err != nil {
		return VerifyDamaged
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if r.Len() > 0 {
		if _, err := r.ReadAt(data, 0); err != nil {
			return VerifyDamaged
		}
	}

	if checksum.DigestBytes(data) != e.Checksum {
		return VerifyDamaged
	}
	return VerifyOK
}
