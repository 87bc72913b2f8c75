package history

import (
	"sort"
	"strings"
	"time"

	"github.com/illusions-app/history/internal/checksum"
	"github.com/illusions-app/history/internal/config"
)

// Kind classifies how a snapshot was created.
type Kind string

const (
	// KindAuto marks periodic, system-triggered snapshots.
	KindAuto Kind = "auto"
	// KindManual marks user-triggered snapshots.
	KindManual Kind = "manual"
	// KindMilestone marks user-labeled snapshots exempt from all
	// automatic eviction.
	KindMilestone Kind = "milestone"
)

// Entry is one durable snapshot record, immutable once written.
type Entry struct {
	ID             string `json:"id"`
	Timestamp      int64  `json:"timestamp"` // ms since epoch
	Filename       string `json:"filename"`
	SourceFile     string `json:"sourceFile"`
	Kind           Kind   `json:"kind"`
	Label          string `json:"label,omitempty"`
	CharacterCount int    `json:"characterCount"`
	ByteSize       int64  `json:"byteSize"`
	Checksum       string `json:"checksum"`
}

// EffectiveKind returns the recorded kind, inferring it from the
// filename marker for legacy entries that never recorded one.
func (e *Entry) EffectiveKind() Kind {
	if e.Kind != "" {
		return e.Kind
	}
	if strings.Contains(e.Filename, config.AutoMarker) {
		return KindAuto
	}
	return KindManual
}

// Time returns the creation instant of the entry.
func (e *Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// buildFilename derives the deterministic content filename:
// "{sourceFile}.[{YYYYMMDDHHmm}]{.__auto__ if auto}.history".
func buildFilename(sourceFile string, t time.Time, kind Kind) string {
	var b strings.Builder
	b.WriteString(sourceFile)
	b.WriteString(".[")
	b.WriteString(checksum.TimeToken(t))
	b.WriteString("]")
	if kind == KindAuto {
		b.WriteString(config.AutoMarker)
	}
	b.WriteString(config.SnapshotExt)
	return b.String()
}

// sortNewestFirst orders entries by timestamp descending in place.
// Storage order is not guaranteed, so every read and mutation path
// re-establishes it.
func sortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
}
