//go:build gosseract

package engines

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/ocr"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// GosseractAvailable reports whether in-process Tesseract is compiled in
const GosseractAvailable = true

// GosseractEngine runs Tesseract in-process through the gosseract bindings.
// A fresh client is created per call since clients are not safe for
// concurrent use.
type GosseractEngine struct {
	languages      []string
	tessdataPrefix string
	logger         *logger.Logger
}

// NewGosseractEngine creates an engine for traineddata names like "rus+eng"
func NewGosseractEngine(language, tessdataPrefix string, log *logger.Logger) (interfaces.OCREngine, error) {
	return &GosseractEngine{
		languages:      strings.Split(language, "+"),
		tessdataPrefix: tessdataPrefix,
		logger:         log,
	}, nil
}

// Name returns the name of the OCR engine
func (e *GosseractEngine) Name() string {
	return string(types.OCRStrategyGosseract)
}

// RecognizeBlocks returns the text of each block Tesseract's layout
// analysis finds, falling back to blank-line splitting of the full text
func (e *GosseractEngine) RecognizeBlocks(ctx context.Context, image []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeTimeout, "OCR cancelled")
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return nil, utils.NewOCRError("failed to set tessdata prefix", err)
		}
	}
	if err := client.SetLanguage(e.languages...); err != nil {
		return nil, utils.NewOCRError("failed to set OCR language", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return nil, utils.NewOCRError("failed to load image", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, utils.NewOCRError("block recognition failed", err)
	}

	var blocks []string
	for _, box := range boxes {
		if text := strings.TrimSpace(box.Word); text != "" {
			blocks = append(blocks, text)
		}
	}
	if len(blocks) > 0 {
		e.logger.Debug("Recognized %d blocks", len(blocks))
		return blocks, nil
	}

	text, err := client.Text()
	if err != nil {
		return nil, utils.NewOCRError("text recognition failed", err)
	}
	return ocr.SplitBlocks(text), nil
}
