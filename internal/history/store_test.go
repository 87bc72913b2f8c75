package history_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/illusions-app/history/internal/config"
	"github.com/illusions-app/history/internal/fs"
	"github.com/illusions-app/history/internal/history"
)

// fakeClock hands out a controllable, advancing time.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*history.Store, *fs.MemoryFS, *fakeClock) {
	t.Helper()
	m := fs.NewMemoryFS()
	clock := newFakeClock()
	s, err := history.NewStore("ws", &history.Options{FS: m, Now: clock.Now})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s, m, clock
}

func contentPath(filename string) string {
	return "ws/" + config.AppDir + "/" + config.HistoryDir + "/" + filename
}

func TestCreateAndRestoreRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)

	cases := []string{
		"Hello, world!",
		"",
		"многобайтовый текст ✍️ 日本語",
		strings.Repeat("chapter\n", 1000),
	}
	for i, content := range cases {
		entry, err := s.CreateSnapshot(fmt.Sprintf("doc%d.mdi", i), content, history.KindManual, "")
		if err != nil {
			t.Fatalf("CreateSnapshot failed: %v", err)
		}
		got, err := s.RestoreSnapshot(entry.ID)
		if err != nil {
			t.Fatalf("RestoreSnapshot failed: %v", err)
		}
		if got != content {
			t.Errorf("round trip mismatch for case %d", i)
		}
	}
}

func TestCreateSnapshotDefaults(t *testing.T) {
	s, _, _ := newTestStore(t)

	entry, err := s.CreateSnapshot("main.mdi", "Hello, world!", "", "")
	if err != nil {
		t.Fatal(err)
	}

	if entry.Kind != history.KindAuto {
		t.Errorf("expected kind auto, got %q", entry.Kind)
	}
	if entry.CharacterCount != 13 || entry.ByteSize != 13 {
		t.Errorf("expected 13/13, got %d/%d", entry.CharacterCount, entry.ByteSize)
	}
	if !strings.Contains(entry.Filename, "main.mdi") {
		t.Errorf("filename %q missing source name", entry.Filename)
	}
	if !strings.Contains(entry.Filename, config.AutoMarker) {
		t.Errorf("filename %q missing auto marker", entry.Filename)
	}
	if !strings.HasSuffix(entry.Filename, config.SnapshotExt) {
		t.Errorf("filename %q missing extension", entry.Filename)
	}
	if entry.ID == "" || entry.Checksum == "" {
		t.Error("expected id and checksum to be set")
	}
}

func TestManualSnapshotHasNoAutoMarker(t *testing.T) {
	s, _, _ := newTestStore(t)

	entry, err := s.CreateSnapshot("main.mdi", "text", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(entry.Filename, config.AutoMarker) {
		t.Errorf("manual snapshot filename %q carries auto marker", entry.Filename)
	}
}

func TestMultibyteSizes(t *testing.T) {
	s, _, _ := newTestStore(t)

	entry, err := s.CreateSnapshot("notes.mdi", "héllo wörld", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}
	if int64(entry.CharacterCount) >= entry.ByteSize {
		t.Errorf("byte size %d should exceed character count %d for non-ASCII content",
			entry.ByteSize, entry.CharacterCount)
	}
}

func TestIdenticalContentIdenticalChecksum(t *testing.T) {
	s, _, clock := newTestStore(t)

	a, err := s.CreateSnapshot("a.mdi", "same content", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Minute)
	b, err := s.CreateSnapshot("b.mdi", "same content", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}
	c, err := s.CreateSnapshot("c.mdi", "different content", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}

	if a.Checksum != b.Checksum {
		t.Error("identical content should produce identical checksums")
	}
	if a.Checksum == c.Checksum {
		t.Error("different content should produce different checksums")
	}
	if a.ID == b.ID {
		t.Error("ids must be unique")
	}
}

func TestRestoreDetectsTampering(t *testing.T) {
	s, m, _ := newTestStore(t)

	entry, err := s.CreateSnapshot("doc.mdi", "original words", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}

	// Tamper with the stored bytes behind the store's back.
	if err := m.WriteFile(contentPath(entry.Filename), []byte("tampered words"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = s.RestoreSnapshot(entry.ID)
	var corr *history.CorruptionError
	if !errors.As(err, &corr) {
		t.Fatalf("expected CorruptionError, got %v", err)
	}
	if corr.Expected == corr.Actual {
		t.Error("corruption error should carry both digests")
	}
	if corr.Expected != entry.Checksum {
		t.Errorf("expected digest %s, got %s", entry.Checksum, corr.Expected)
	}

	// The tampered file stays in place for inspection.
	if !m.Exists(contentPath(entry.Filename)) {
		t.Error("corrupt file must not be auto-deleted")
	}
}

func TestRestoreUnknownID(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.RestoreSnapshot("no-such-id")
	if !errors.Is(err, history.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestSnapshotContent(t *testing.T) {
	s, _, _ := newTestStore(t)

	entry, err := s.CreateSnapshot("doc.mdi", "body", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}

	got, ok := s.SnapshotContent(entry.ID)
	if !ok || got != "body" {
		t.Fatalf("expected body, got %q ok=%v", got, ok)
	}

	if _, ok := s.SnapshotContent("missing"); ok {
		t.Error("expected absence for unknown id")
	}
}

func TestSnapshotsFilterAndOrder(t *testing.T) {
	s, _, clock := newTestStore(t)

	if _, err := s.CreateSnapshot("a.mdi", "a1", history.KindManual, ""); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Minute)
	if _, err := s.CreateSnapshot("b.mdi", "b1", history.KindManual, ""); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Minute)
	if _, err := s.CreateSnapshot("a.mdi", "a2", history.KindManual, ""); err != nil {
		t.Fatal(err)
	}

	all, err := s.Snapshots("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Timestamp < all[i].Timestamp {
			t.Fatal("snapshots not sorted newest first")
		}
	}

	onlyA, err := s.Snapshots("a.mdi")
	if err != nil {
		t.Fatal(err)
	}
	if len(onlyA) != 2 {
		t.Fatalf("expected 2 snapshots for a.mdi, got %d", len(onlyA))
	}
	for _, e := range onlyA {
		if e.SourceFile != "a.mdi" {
			t.Errorf("unexpected source %q", e.SourceFile)
		}
	}
}

func TestDeleteSnapshot(t *testing.T) {
	s, m, clock := newTestStore(t)

	keep, err := s.CreateSnapshot("doc.mdi", "keep me", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Minute)
	gone, err := s.CreateSnapshot("doc.mdi", "delete me", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteSnapshot(gone.ID); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Snapshots("")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ID != keep.ID {
		t.Fatalf("expected only %s to remain, got %v", keep.ID, entries)
	}
	if m.Exists(contentPath(gone.Filename)) {
		t.Error("deleted snapshot file should be gone")
	}
	if !m.Exists(contentPath(keep.Filename)) {
		t.Error("kept snapshot file should remain")
	}
}

func TestDeleteUnknownIDLeavesIndexUnchanged(t *testing.T) {
	s, _, _ := newTestStore(t)

	if _, err := s.CreateSnapshot("doc.mdi", "content", history.KindManual, ""); err != nil {
		t.Fatal(err)
	}

	err := s.DeleteSnapshot("no-such-id")
	if !errors.Is(err, history.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}

	entries, err := s.Snapshots("")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("index changed by failed delete: %d entries", len(entries))
	}
}

func TestDeleteMilestoneIsExplicitlyAllowed(t *testing.T) {
	s, _, _ := newTestStore(t)

	ms, err := s.CreateSnapshot("doc.mdi", "draft one", history.KindMilestone, "first draft")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteSnapshot(ms.ID); err != nil {
		t.Fatalf("explicit milestone delete must succeed: %v", err)
	}
}

func TestDeleteSurvivesMissingContentFile(t *testing.T) {
	s, m, _ := newTestStore(t)

	entry, err := s.CreateSnapshot("doc.mdi", "content", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Remove(contentPath(entry.Filename)); err != nil {
		t.Fatal(err)
	}

	// The entry is still removed from the index.
	if err := s.DeleteSnapshot(entry.ID); err != nil {
		t.Fatalf("delete with missing file should not fail: %v", err)
	}
	entries, _ := s.Snapshots("")
	if len(entries) != 0 {
		t.Fatal("entry should be gone from index")
	}
}

func TestShouldSnapshot(t *testing.T) {
	s, _, clock := newTestStore(t)

	ok, err := s.ShouldSnapshot("doc.mdi", 5*time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected true with no snapshots, got %v %v", ok, err)
	}

	if _, err := s.CreateSnapshot("doc.mdi", "v1", "", ""); err != nil {
		t.Fatal(err)
	}

	ok, err = s.ShouldSnapshot("doc.mdi", 5*time.Minute)
	if err != nil || ok {
		t.Fatalf("expected false right after a snapshot, got %v %v", ok, err)
	}

	clock.Advance(6 * time.Minute)
	ok, err = s.ShouldSnapshot("doc.mdi", 5*time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected true after the interval, got %v %v", ok, err)
	}

	// Another document is unaffected.
	ok, err = s.ShouldSnapshot("other.mdi", 5*time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected true for a different source, got %v %v", ok, err)
	}
}

func TestConcurrentCreatesLoseNoEntries(t *testing.T) {
	dir := t.TempDir()
	s, err := history.NewStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateSnapshot(fmt.Sprintf("doc%02d.mdi", i), fmt.Sprintf("content %d", i), history.KindManual, "")
			if err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	entries, err := s.Snapshots("")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != n {
		t.Fatalf("expected %d entries after concurrent creates, got %d", n, len(entries))
	}
}
