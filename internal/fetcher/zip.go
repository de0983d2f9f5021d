package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// maxEntryBytes caps a single extracted file. The largest city shapefiles
// are a few megabytes.
const maxEntryBytes = 512 << 20

// ExtractZIP extracts the data files of a ZIP archive into destDir and
// returns their paths in archive order. Directories and macOS resource
// forks are skipped.
func ExtractZIP(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: open zip")
	}
	defer r.Close() //nolint:errcheck

	var extracted []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() || resourceFork(f.Name) {
			continue
		}
		p, err := extractZIPEntry(f, destDir)
		if err != nil {
			return extracted, err
		}
		extracted = append(extracted, p)
	}
	return extracted, nil
}

func resourceFork(name string) bool {
	return strings.HasPrefix(name, "__MACOSX/") || strings.HasPrefix(path.Base(name), "._")
}

// extractZIPEntry writes one file entry under destDir, rejecting names that
// escape it.
func extractZIPEntry(f *zip.File, destDir string) (string, error) {
	dest := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(filepath.Clean(dest), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("fetcher: illegal zip entry %q", f.Name)
	}
	if f.UncompressedSize64 > maxEntryBytes {
		return "", eris.Errorf("fetcher: zip entry %q too large (%d bytes)", f.Name, f.UncompressedSize64)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", eris.Wrap(err, "fetcher: create extract dir")
	}

	rc, err := f.Open()
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: open zip entry %s", f.Name)
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(dest)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: create %s", dest)
	}
	if _, err := io.Copy(out, io.LimitReader(rc, maxEntryBytes)); err != nil {
		_ = out.Close()
		return "", eris.Wrapf(err, "fetcher: extract %s", f.Name)
	}
	if err := out.Close(); err != nil {
		return "", eris.Wrapf(err, "fetcher: close %s", dest)
	}
	return dest, nil
}
