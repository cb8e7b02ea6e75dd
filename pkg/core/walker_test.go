package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/utils"
)

func relPaths(t *testing.T, w *Walker) []string {
	t.Helper()
	files, err := w.Files(context.Background())
	require.NoError(t, err)
	var rels []string
	for _, f := range files {
		rels = append(rels, filepath.ToSlash(f.RelPath))
	}
	return rels
}

func TestWalkerFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.txt":          "b",
		"a.pdf":          "a",
		"sub/c.txt":      "c",
		"sub/deep/d.txt": "d",
		"skip/e.txt":     "e",
		".hidden.txt":    "h",
		".git/config":    "g",
		"sub/.cache/x":   "x",
	})

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name: "all files in lexical order",
			want: []string{"a.pdf", "b.txt", "skip/e.txt", "sub/c.txt", "sub/deep/d.txt"},
		},
		{
			name:    "base name pattern matches at any depth",
			include: []string{"*.txt"},
			want:    []string{"b.txt", "skip/e.txt", "sub/c.txt", "sub/deep/d.txt"},
		},
		{
			name:    "path pattern",
			include: []string{"sub/**/*.txt"},
			want:    []string{"sub/c.txt", "sub/deep/d.txt"},
		},
		{
			name:    "excluded directory is pruned",
			exclude: []string{"skip"},
			want:    []string{"a.pdf", "b.txt", "sub/c.txt", "sub/deep/d.txt"},
		},
		{
			name:    "exclude wins over include",
			include: []string{"*.txt"},
			exclude: []string{"sub/deep/*"},
			want:    []string{"b.txt", "skip/e.txt", "sub/c.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWalker(root, tt.include, tt.exclude, logger.Discard())
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, w))
		})
	}
}

func TestWalkerSkipDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":     "a",
		"out/a.txt": "translated",
	})

	w, err := NewWalker(root, nil, nil, logger.Discard())
	require.NoError(t, err)
	w.SkipDir(filepath.Join(root, "out"))
	assert.Equal(t, []string{"a.txt"}, relPaths(t, w))
}

func TestWalkerDirsDeepestFirst(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/b/c/file.txt":      "x",
		"z/file.txt":          "y",
		".git/objects/pack/p": "p",
		"a/.svn/entries":      "e",
	})

	w, err := NewWalker(root, nil, nil, logger.Discard())
	require.NoError(t, err)
	dirs, err := w.Dirs(context.Background())
	require.NoError(t, err)

	var rels []string
	for _, dir := range dirs {
		rel, err := filepath.Rel(root, dir)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"a/b/c", "a/b", "a", "z"}, rels)
}

func TestNewWalkerRejectsBadPattern(t *testing.T) {
	_, err := NewWalker(t.TempDir(), []string{"[abc"}, nil, logger.Discard())
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeValidation, utils.GetErrorType(err))
}

func TestResolveDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"file.txt": "x"})

	abs, err := resolveDir(root, "source")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	_, err = resolveDir(filepath.Join(root, "missing"), "source")
	assert.Equal(t, utils.ErrorTypeNotFound, utils.GetErrorType(err))

	_, err = resolveDir(filepath.Join(root, "file.txt"), "source")
	assert.Equal(t, utils.ErrorTypeValidation, utils.GetErrorType(err))

	_, err = resolveDir("", "source")
	assert.Equal(t, utils.ErrorTypeValidation, utils.GetErrorType(err))
}
