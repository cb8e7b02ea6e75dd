package engines

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// fakeTesseract writes an executable stand-in for the tesseract binary
func fakeTesseract(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a unix shell")
	}
	path := filepath.Join(t.TempDir(), "tesseract")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755))
	return path
}

func TestOCRLanguage(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SourceLang = "ru"
	assert.Equal(t, "rus", OCRLanguage(cfg))

	cfg.OCRLanguage = "ru+en"
	assert.Equal(t, "rus+eng", OCRLanguage(cfg))
}

func TestSelectTesseractCLI(t *testing.T) {
	cfg := config.NewConfig()
	cfg.OCRStrategy = types.OCRStrategyTesseractCLI
	cfg.TesseractPath = fakeTesseract(t)

	engine, err := SelectOCREngine(cfg, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, string(types.OCRStrategyTesseractCLI), engine.Name())

	cfg.TesseractPath = filepath.Join(t.TempDir(), "missing")
	_, err = SelectOCREngine(cfg, logger.Discard())
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeNotFound, utils.GetErrorType(err))
}

func TestSelectUnknownStrategy(t *testing.T) {
	cfg := config.NewConfig()
	cfg.OCRStrategy = "magic"

	_, err := SelectOCREngine(cfg, logger.Discard())
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeValidation, utils.GetErrorType(err))
}
