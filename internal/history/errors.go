package history

import (
	"errors"
	"fmt"
)

// ErrSnapshotNotFound reports an unknown snapshot identifier on
// restore, delete, or content fetch.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// CorruptionError reports a checksum mismatch at restore time. The
// stored file is left in place for inspection, never auto-deleted.
type CorruptionError struct {
	ID       string
	Filename string
	Expected string
	Actual   string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("snapshot %s is corrupted: file %q checksum %s does not match recorded %s",
		e.ID, e.Filename, e.Actual, e.Expected)
}
