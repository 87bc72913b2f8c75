package history

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// archiveManifest is written as the first member of every export.
const archiveManifest = "manifest.json"

// Export writes a gzip-compressed tar archive of sourceFile's snapshots
// (all snapshots when sourceFile is empty) to w. The archive holds a
// manifest of the exported entries followed by each content file under
// its snapshot filename.
func (s *Store) Export(sourceFile string, w io.Writer) error {
	entries, err := s.Snapshots(sourceFile)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no snapshots to export for %q", sourceFile)
	}

	gzw := gzip.NewWriter(w)
	tw := tar.NewWriter(gzw)

	manifest, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export manifest: %w", err)
	}
	if err := writeTarMember(tw, archiveManifest, manifest); err != nil {
		return err
	}

	for _, e := range entries {
		data, err := s.fsys.ReadFile(s.contentPath(e.Filename))
		if err != nil {
			return fmt.Errorf("read snapshot %q for export: %w", e.Filename, err)
		}
		if err := writeTarMember(tw, e.Filename, data); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finish export archive: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finish export compression: %w", err)
	}
	return nil
}

func writeTarMember(tw *tar.Writer, name string, data []byte) error {
	hdr := &tar.Header{
		Name: name,
		Mode: 0o644,
		Size: int64(len(data)),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write archive header %q: %w", name, err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("write archive member %q: %w", name, err)
	}
	return nil
}
