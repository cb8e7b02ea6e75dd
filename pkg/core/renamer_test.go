package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/utils"
)

func newTestRenamer(table map[string]string, dryRun, dirs bool) (*FilenameTranslator, *bytes.Buffer) {
	cfg := testConfig()
	cfg.DryRun = dryRun
	cfg.RenameDirs = dirs
	var out bytes.Buffer
	return NewFilenameTranslator(cfg, &mapTranslator{table: table}, logger.Discard(), &out), &out
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name, stem, ext string
	}{
		{"report.pdf", "report", ".pdf"},
		{"backup.tar.gz", "backup", ".tar.gz"},
		{"Backup.TAR.GZ", "Backup", ".TAR.GZ"},
		{"README", "README", ""},
		{".bashrc", "", ".bashrc"},
		{"v1.2.txt", "v1.2", ".txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext := SplitName(tt.name)
			assert.Equal(t, tt.stem, stem)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestFilenameTranslatorDryRun(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"привет.txt": "x",
		"мир.tar.gz": "y",
		"same.txt":   "z",
		".hidden":    "h",
	})

	renamer, out := newTestRenamer(map[string]string{
		"привет": "hello",
		"мир":    "world",
		"same":   "same",
	}, true, false)

	report, err := renamer.Run(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Planned)
	assert.Equal(t, 0, report.Renamed)
	assert.Equal(t, 1, report.Unchanged)

	output := out.String()
	assert.Contains(t, output, filepath.Join(root, "привет.txt")+" -> "+filepath.Join(root, "hello.txt"))
	assert.Contains(t, output, filepath.Join(root, "мир.tar.gz")+" -> "+filepath.Join(root, "world.tar.gz"))
	assert.ElementsMatch(t, []string{"привет.txt", "мир.tar.gz", "same.txt", ".hidden"}, listNames(t, root))
}

func TestFilenameTranslatorRenames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"один.txt": "1",
		"раз.txt":  "2",
		"a.md":     "3",
		"b.md":     "4",
	})

	renamer, _ := newTestRenamer(map[string]string{
		"один": "one",
		"раз":  "one",
		"a":    "b",
		"b":    "b",
	}, false, false)

	report, err := renamer.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Renamed)

	assert.ElementsMatch(t, []string{"one.txt", "one (1).txt", "b (1).md", "b.md"}, listNames(t, root))
	assert.Equal(t, "1", readFile(t, filepath.Join(root, "one.txt")))
	assert.Equal(t, "2", readFile(t, filepath.Join(root, "one (1).txt")))
	assert.Equal(t, "3", readFile(t, filepath.Join(root, "b (1).md")))
	assert.Equal(t, "4", readFile(t, filepath.Join(root, "b.md")))
}

func TestFilenameTranslatorDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"папка/вложенная/файл.txt": "content",
	})

	renamer, _ := newTestRenamer(map[string]string{
		"папка":     "folder",
		"вложенная": "nested",
		"файл":      "file",
	}, false, true)

	report, err := renamer.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Renamed)

	require.Len(t, report.Plans, 3)
	assert.False(t, report.Plans[0].IsDir)
	assert.Equal(t, 2, report.Plans[0].Depth)
	assert.True(t, report.Plans[1].IsDir)
	assert.Equal(t, 1, report.Plans[1].Depth)

	assert.Equal(t, "content", readFile(t, filepath.Join(root, "folder", "nested", "file.txt")))
}

func TestFilenameTranslatorLeavesHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/объект":  "o",
		".заметки.txt": "n",
		"папка/.кэш/x": "c",
		"папка/файл":   "f",
	})

	cfg := testConfig()
	cfg.RenameDirs = true
	translator := &mapTranslator{table: map[string]string{"папка": "folder", "файл": "file"}}
	renamer := NewFilenameTranslator(cfg, translator, logger.Discard(), &bytes.Buffer{})

	report, err := renamer.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Renamed)
	assert.ElementsMatch(t, []string{"папка", "файл"}, translator.seen)

	assert.ElementsMatch(t, []string{".git", ".заметки.txt", "folder"}, listNames(t, root))
	assert.ElementsMatch(t, []string{".кэш", "file"}, listNames(t, filepath.Join(root, "folder")))
	assert.FileExists(t, filepath.Join(root, ".git", "объект"))
}

func TestFilenameTranslatorNormalizesToNFC(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"кафе.txt": "x"})

	// "e" followed by a combining acute accent
	renamer, _ := newTestRenamer(map[string]string{"кафе": "Cafe\u0301"}, false, false)
	_, err := renamer.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"Caf\u00e9.txt"}, listNames(t, root))
}

func TestFilenameTranslatorTranslationFailure(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"FAIL.txt": "x",
		"ok.txt":   "y",
	})

	renamer, _ := newTestRenamer(map[string]string{"ok": "fine"}, false, false)
	report, err := renamer.Run(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Renamed)
	assert.ElementsMatch(t, []string{"FAIL.txt", "fine.txt"}, listNames(t, root))
}

func TestFilenameTranslatorSanitizesNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"путь.txt": "x"})

	renamer, _ := newTestRenamer(map[string]string{"путь": " a/b  c. "}, false, false)
	_, err := renamer.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_b c.txt"}, listNames(t, root))
}

func TestFitName(t *testing.T) {
	stem := strings.Repeat("я", 300)
	name := fitName(stem, ".txt", 3)
	assert.LessOrEqual(t, len(name), maxNameBytes)
	assert.True(t, utf8.ValidString(name))
	assert.True(t, strings.HasSuffix(name, " (3).txt"))

	assert.Equal(t, "short.txt", fitName("short", ".txt", 0))
}

func TestRenameNoClobber(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a", "b.txt": "b"})

	err := renameNoClobber(filepath.Join(root, "a.txt"), filepath.Join(root, "b.txt"))
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeValidation, utils.GetErrorType(err))
	assert.Equal(t, "b", readFile(t, filepath.Join(root, "b.txt")))

	require.NoError(t, renameNoClobber(filepath.Join(root, "a.txt"), filepath.Join(root, "c.txt")))
	assert.Equal(t, "a", readFile(t, filepath.Join(root, "c.txt")))
}
