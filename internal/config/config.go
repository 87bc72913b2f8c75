package config

const (
	// AppDir is the hidden application directory under the workspace root.
	AppDir = ".illusions"

	// HistoryDir holds all snapshot content files plus the index and
	// bookmark documents, nested inside AppDir.
	HistoryDir = "history"

	IndexFile     = "index.json"
	BookmarksFile = ".history_bookmarks.json"

	// SnapshotExt is the extension of every snapshot content file.
	SnapshotExt = ".history"

	// AutoMarker distinguishes auto snapshots in their filename.
	AutoMarker = ".__auto__"
)

const (
	DefaultMaxSnapshots  = 100
	DefaultRetentionDays = 90

	// PerFileAutoCap is the fixed ceiling of auto snapshots kept per
	// source file, independent of the global cap.
	PerFileAutoCap = 100
)

// TimestampLayout formats a snapshot time into the filename-safe
// YYYYMMDDHHmm token embedded in content filenames.
const TimestampLayout = "200601021504"
