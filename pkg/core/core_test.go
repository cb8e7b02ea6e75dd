package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// mapTranslator translates through a fixed table, uppercases anything else
// and fails on text containing FAIL
type mapTranslator struct {
	mu    sync.Mutex
	table map[string]string
	seen  []string
}

func (m *mapTranslator) Translate(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.seen = append(m.seen, text)
	m.mu.Unlock()

	if strings.Contains(text, "FAIL") {
		return "", utils.NewTranslationError("server rejected text", nil)
	}
	if translated, ok := m.table[text]; ok {
		return translated, nil
	}
	return strings.ToUpper(text), nil
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.MaxConcurrency = 2
	return cfg
}

// writeTree creates files relative to root, making parent directories
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
