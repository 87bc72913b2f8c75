package history_test

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/illusions-app/history/internal/history"
)

func TestExportRoundTrip(t *testing.T) {
	s, _, clock := newTestStore(t)

	a, err := s.CreateSnapshot("novel.mdi", "chapter one", history.KindManual, "")
	if err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Minute)
	b, err := s.CreateSnapshot("novel.mdi", "chapter two", history.KindMilestone, "draft")
	if err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Minute)
	if _, err := s.CreateSnapshot("other.mdi", "unrelated", history.KindManual, ""); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := s.Export("novel.mdi", &buf); err != nil {
		t.Fatal(err)
	}

	gzr, err := gzip.NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	tr := tar.NewReader(gzr)

	members := map[string][]byte{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatal(err)
		}
		members[hdr.Name] = data
	}

	manifest, ok := members["manifest.json"]
	if !ok {
		t.Fatal("archive missing manifest")
	}
	var entries []history.Entry
	if err := json.Unmarshal(manifest, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("manifest should list 2 entries, got %d", len(entries))
	}

	if string(members[a.Filename]) != "chapter one" {
		t.Errorf("unexpected content for %q", a.Filename)
	}
	if string(members[b.Filename]) != "chapter two" {
		t.Errorf("unexpected content for %q", b.Filename)
	}
	if len(members) != 3 {
		t.Errorf("archive should hold manifest plus 2 files, got %d members", len(members))
	}
}

func TestExportNothingToExport(t *testing.T) {
	s, _, _ := newTestStore(t)

	var buf bytes.Buffer
	if err := s.Export("ghost.mdi", &buf); err == nil {
		t.Fatal("expected error exporting a source with no snapshots")
	}
}
