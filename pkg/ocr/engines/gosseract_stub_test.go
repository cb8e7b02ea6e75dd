//go:build !gosseract

package engines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/types"
)

func TestGosseractFallsBackToCLI(t *testing.T) {
	assert.False(t, GosseractAvailable)

	_, err := NewGosseractEngine("rus", "", logger.Discard())
	assert.ErrorIs(t, err, ErrGosseractNotEnabled)

	cfg := config.NewConfig()
	cfg.OCRStrategy = types.OCRStrategyGosseract
	cfg.TesseractPath = fakeTesseract(t)

	engine, err := SelectOCREngine(cfg, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, string(types.OCRStrategyTesseractCLI), engine.Name())
}
