package files

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
)

func validFileDoc(t *testing.T, location string) document.Document {
	t.Helper()
	return document.Document{
		"file_location":      location,
		"filename":           filepath.Base(location),
		"creation_time":      "2024-03-15 10:30:00",
		"modification_time":  "2024-03-15 11:00:00",
		"data_collection_id": oid.New().Hex(),
		"file_hash":          "a3f5b8c2d1e4f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1",
		"filesize":           2048,
		"permissions": map[string]any{
			"owners": []any{map[string]any{"id": oid.New().Hex(), "email": "owner@example.com"}},
		},
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewFileInServerContext(t *testing.T) {
	f, err := New(validFileDoc(t, "/remote/runs/sample.tsv"), depictio.ContextServer)
	require.NoError(t, err, "server context must not stat the path")

	assert.Equal(t, "/remote/runs/sample.tsv", f.FileLocation)
	assert.Equal(t, int64(2048), f.Filesize)
	assert.NotEmpty(t, f.RegistrationTime, "registration time defaulted")
	assert.Len(t, f.Permissions.Owners, 1)
}

func TestNewFileInCLIContextChecksPath(t *testing.T) {
	path := writeTempFile(t, "data")

	_, err := New(validFileDoc(t, path), depictio.ContextCLI)
	require.NoError(t, err)

	_, err = New(validFileDoc(t, filepath.Join(t.TempDir(), "missing.tsv")), depictio.ContextCLI)
	require.Error(t, err)
	assert.Equal(t, depictio.KindPathNotFound, depictio.KindOf(err))
	assert.Equal(t, "file_location", depictio.PathOf(err))
}

func TestNewFileRejectsWrongHashVariant(t *testing.T) {
	doc := validFileDoc(t, "/remote/sample.tsv")
	doc["file_hash"] = "9e107d9d372bb6826bd81d3542a419d6" // md5-sized

	_, err := New(doc, depictio.ContextServer)
	require.Error(t, err)
	assert.Equal(t, depictio.KindInvalidHashLength, depictio.KindOf(err))
}

func TestNewFileRejectsZeroSize(t *testing.T) {
	doc := validFileDoc(t, "/remote/sample.tsv")
	doc["filesize"] = 0

	_, err := New(doc, depictio.ContextServer)
	require.Error(t, err)
	assert.Equal(t, "filesize", depictio.PathOf(err))
}

func TestFileFromStore(t *testing.T) {
	id := oid.New()
	doc := validFileDoc(t, "/remote/sample.tsv")
	doc["_id"] = id.Hex()

	f, err := FromStore(doc)
	require.NoError(t, err)
	assert.Equal(t, id, f.ID)
}

func TestScanResult(t *testing.T) {
	sr, err := NewScanResult(document.Document{
		"file": validFileDoc(t, "/remote/sample.tsv"),
		"scan_result": map[string]any{
			"result": "success",
			"reason": "added",
		},
	}, depictio.ContextServer)
	require.NoError(t, err)

	assert.Equal(t, ResultSuccess, sr.ScanResult.Result)
	assert.Equal(t, ReasonAdded, sr.ScanResult.Reason)
	assert.NotEmpty(t, sr.ScanTime)
}

func TestScanResultRejectsUnknownOutcome(t *testing.T) {
	_, err := NewScanResult(document.Document{
		"file": validFileDoc(t, "/remote/sample.tsv"),
		"scan_result": map[string]any{
			"result": "partial",
			"reason": "added",
		},
	}, depictio.ContextServer)
	require.Error(t, err)
	assert.Equal(t, depictio.KindInvalidEnum, depictio.KindOf(err))
}

func TestHashFile(t *testing.T) {
	path := writeTempFile(t, "gene counts payload")

	got, err := HashFile(path)
	require.NoError(t, err)

	sum := sha256.Sum256([]byte("gene counts payload"))
	assert.Equal(t, hex.EncodeToString(sum[:]), got)

	_, err = HashFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, depictio.KindNotReadable, depictio.KindOf(err))
}
