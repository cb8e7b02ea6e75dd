package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/types"
)

func TestSanitizeFileName(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"Annual report", "Annual report"},
		{"a/b\\c", "a_b_c"},
		{"  lots   of\tspace  ", "lots of space"},
		{"line\nbreak", "line break"},
		{"trailing dot.", "trailing dot"},
		{"..", ""},
		{"", ""},
	} {
		assert.Equal(t, tc.want, SanitizeFileName(tc.in), tc.in)
	}

	long := strings.Repeat("й", 200) // 400 bytes
	got := SanitizeFileName(long)
	assert.LessOrEqual(t, len(got), maxFileNameBytes)
	assert.True(t, strings.HasPrefix(long, got))
}

func TestIsSubPath(t *testing.T) {
	assert.True(t, IsSubPath("/data/src", "/data/src/out"))
	assert.True(t, IsSubPath("/data/src", "/data/src"))
	assert.False(t, IsSubPath("/data/src", "/data/srcs"))
	assert.False(t, IsSubPath("/data/src", "/data"))
}

func TestGetFileInfo(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "scans", "Page.PNG")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0644))

	info, err := GetFileInfo(root, path)
	require.NoError(t, err)
	assert.Equal(t, "png", info.Extension)
	assert.Equal(t, filepath.Join("scans", "Page.PNG"), info.RelPath)
	assert.Equal(t, "Page.PNG", info.Name)
	assert.Equal(t, types.ImageMediaType, info.MediaType)
	assert.EqualValues(t, 8, info.Size)

	_, err = GetFileInfo(root, filepath.Join(root, "scans"))
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "out.txt")

	require.NoError(t, WriteFileAtomic(target, []byte("first")))
	require.NoError(t, WriteFileAtomic(target, []byte("second")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.True(t, FileExists(target))
	assert.False(t, FileExists(filepath.Dir(target)))
}

func TestSameContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	require.NoError(t, os.WriteFile(a, []byte("same"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("same"), 0644))
	require.NoError(t, os.WriteFile(c, []byte("diff"), 0644))

	assert.True(t, SameContent(a, b))
	assert.False(t, SameContent(a, c))
	assert.False(t, SameContent(a, filepath.Join(dir, "missing")))
}

func TestWorkspace(t *testing.T) {
	ws, err := NewWorkspace("report.pdf", logger.Discard())
	require.NoError(t, err)

	pages, err := ws.CreateDir("pages")
	require.NoError(t, err)
	assert.DirExists(t, pages)

	base := ws.GetPath("")
	assert.DirExists(t, base)
	assert.Equal(t, base, filepath.Dir(pages))

	require.NoError(t, ws.WithCleanup(func() error { return nil }))
	assert.NoDirExists(t, base)

	_, err = ws.CreateDir("late")
	assert.Error(t, err)
	assert.NoError(t, ws.Cleanup())
}

func TestFindExecutable(t *testing.T) {
	_, err := FindExecutable("", []string{"definitely-not-a-real-binary-xyz"})
	require.Error(t, err)
	assert.Equal(t, ErrorTypeNotFound, GetErrorType(err))

	_, err = FindExecutable("/nonexistent/gs", nil)
	assert.Error(t, err)
}
