package engines

import (
	"errors"
	"fmt"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/ocr"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// ErrGosseractNotEnabled is returned by NewGosseractEngine in binaries built
// without the gosseract tag
var ErrGosseractNotEnabled = errors.New("gosseract support not enabled; rebuild with -tags gosseract")

// OCRLanguage returns the traineddata names to recognize with: the
// configured OCR language, or the source language mapped to Tesseract names
func OCRLanguage(cfg *config.Config) string {
	if cfg.OCRLanguage != "" {
		return ocr.TesseractLanguage(cfg.OCRLanguage)
	}
	return ocr.TesseractLanguage(cfg.SourceLang)
}

// SelectOCREngine builds the engine for the configured strategy
func SelectOCREngine(cfg *config.Config, log *logger.Logger) (interfaces.OCREngine, error) {
	language := OCRLanguage(cfg)
	tessdata := cfg.TessdataPrefix
	if tessdata != "" {
		expanded, err := utils.ExpandPath(tessdata)
		if err != nil {
			return nil, err
		}
		tessdata = expanded
	}

	switch cfg.OCRStrategy {
	case types.OCRStrategyGosseract:
		engine, err := NewGosseractEngine(language, tessdata, log)
		if err != nil {
			log.Debug("%v; trying the tesseract binary", err)
			return tesseractCLI(cfg, language, tessdata, log)
		}
		log.Debug("Using in-process Tesseract with language %s", language)
		return engine, nil
	case types.OCRStrategyTesseractCLI:
		return tesseractCLI(cfg, language, tessdata, log)
	default:
		return nil, utils.NewValidationError(fmt.Sprintf("unknown OCR strategy: %s", cfg.OCRStrategy), nil)
	}
}

func tesseractCLI(cfg *config.Config, language, tessdata string, log *logger.Logger) (interfaces.OCREngine, error) {
	path, err := utils.FindExecutable(cfg.TesseractPath, constants.GetPlatformConfig().TesseractPaths)
	if err != nil {
		return nil, utils.WrapError(err, "", "tesseract binary is required for OCR")
	}
	log.Debug("Using %s with language %s", path, language)
	return ocr.NewTesseractCLIEngine(path, language, tessdata, log), nil
}
