package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/types"
)

func TestWriteVersionInfo(t *testing.T) {
	SetVersionInfo("v1.2.3", "abc123", "2025-01-01", "ci")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown", "unknown") })

	cfg := config.NewConfig()
	cfg.LibreTranslateURL = "http://translate.local:5000"
	cfg.SourceLang = "de"
	cfg.TargetLang = "en"
	cfg.OCRStrategy = types.OCRStrategyTesseractCLI

	var out bytes.Buffer
	writeVersionInfo(&out, cfg, "")
	text := out.String()

	assert.Contains(t, text, "doc-translate v1.2.3")
	assert.Contains(t, text, "abc123")
	assert.Contains(t, text, "http://translate.local:5000")
	assert.Contains(t, text, "German → English")
	assert.Contains(t, text, "(not set)")
	assert.Contains(t, text, "tesseract-cli")
	assert.Contains(t, text, "deu")
}

func TestVersionConfigDoesNotCreateFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DOC_TRANSLATE_TARGET_LANG", "fr")
	missing := filepath.Join(t.TempDir(), "nested", "config.yaml")
	parseFlags(t, versionCmd, "--config", missing)

	cfg, path := versionConfig()
	assert.Empty(t, path)
	assert.Equal(t, "fr", cfg.TargetLang)
	assert.NoFileExists(t, missing)

	existing := writeConfigFile(t, layeredConfig)
	require.NoError(t, versionCmd.Flags().Set("config", existing))
	cfg, path = versionConfig()
	assert.Equal(t, existing, path)
	assert.Equal(t, "de", cfg.SourceLang)
	assert.Equal(t, "fr", cfg.TargetLang)
}
