package fetcher

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestZIP(t *testing.T, files map[string]string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return zipPath
}

func TestExtractZIP_MultiFile(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{
		"agglomerations.geojson": sampleGeoJSON,
		"README.txt":             "urban agglomerations 1950-2025",
	})

	destDir := t.TempDir()
	extracted, err := ExtractZIP(zipPath, destDir)
	require.NoError(t, err)
	assert.Len(t, extracted, 2)

	data, err := os.ReadFile(filepath.Join(destDir, "agglomerations.geojson"))
	require.NoError(t, err)
	assert.Equal(t, sampleGeoJSON, string(data))
}

func TestLoad_ZIPWithGeoJSON(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{
		"notes.txt":    "ignored",
		"data/ua.json": sampleGeoJSON,
	})

	coll, err := Load(context.Background(), zipPath, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, coll.Len())
}

func TestLoad_ZIPWithoutData(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{"notes.txt": "nothing here"})

	_, err := Load(context.Background(), zipPath, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExtractZIP_ZipSlipPrevention(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "malicious.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	fw, err := w.Create("../../../etc/passwd")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("malicious")) //nolint:errcheck
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	destDir := t.TempDir()
	_, err = ExtractZIP(zipPath, destDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal zip entry")
}

func TestExtractZIP_SkipsResourceForks(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{
		"ua.geojson":            sampleGeoJSON,
		"__MACOSX/._ua.geojson": "fork",
		"._ua.geojson":          "fork",
	})

	extracted, err := ExtractZIP(zipPath, t.TempDir())
	require.NoError(t, err)
	require.Len(t, extracted, 1)
	assert.Equal(t, "ua.geojson", filepath.Base(extracted[0]))
}

func TestExtractZIP_WithSubdirectory(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "nested.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)

	w := zip.NewWriter(f)

	_, err = w.Create("subdir/")
	require.NoError(t, err)

	fw, err := w.Create("subdir/data.txt")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("nested content")) //nolint:errcheck

	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	destDir := t.TempDir()
	extracted, err := ExtractZIP(zipPath, destDir)
	require.NoError(t, err)
	assert.Len(t, extracted, 1)

	data, err := os.ReadFile(filepath.Join(destDir, "subdir", "data.txt"))
	require.NoError(t, err)
	assert.Equal(t, "nested content", string(data))
}

func TestExtractZIP_InvalidArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notazip.zip")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip"), 0o644))

	destDir := t.TempDir()
	_, err := ExtractZIP(path, destDir)
	require.Error(t, err)
}
