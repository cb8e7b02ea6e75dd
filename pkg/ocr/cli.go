package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/translate"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// TesseractCLIEngine runs the tesseract binary once per image
type TesseractCLIEngine struct {
	tesseractPath string
	language      string
	tessdataDir   string
	logger        *logger.Logger
}

// NewTesseractCLIEngine creates an engine for the given traineddata languages
// such as "rus" or "rus+eng"
func NewTesseractCLIEngine(tesseractPath, language, tessdataDir string, log *logger.Logger) *TesseractCLIEngine {
	if log == nil {
		log = logger.DefaultLogger()
	}
	return &TesseractCLIEngine{
		tesseractPath: tesseractPath,
		language:      language,
		tessdataDir:   tessdataDir,
		logger:        log,
	}
}

// Name returns the name of the OCR engine
func (e *TesseractCLIEngine) Name() string {
	return string(types.OCRStrategyTesseractCLI)
}

// RecognizeBlocks pipes the image through tesseract and splits the plain
// text output into blocks on blank lines
func (e *TesseractCLIEngine) RecognizeBlocks(ctx context.Context, image []byte) ([]string, error) {
	args := []string{"stdin", "stdout", "-l", e.language}
	if e.tessdataDir != "" {
		args = append(args, "--tessdata-dir", e.tessdataDir)
	}

	cmd := exec.CommandContext(ctx, e.tesseractPath, args...)
	cmd.Stdin = bytes.NewReader(image)
	var stdout bytes.Buffer
	var stderrBuilder strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderrBuilder

	e.logger.Debug("Command: %s %s", e.tesseractPath, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, utils.WrapError(ctx.Err(), utils.ErrorTypeTimeout, "OCR cancelled")
		}
		stderrOutput := strings.TrimSpace(stderrBuilder.String())
		if stderrOutput != "" {
			return nil, utils.NewOCRError(fmt.Sprintf("tesseract failed: %s", stderrOutput), err)
		}
		return nil, utils.NewOCRError("tesseract failed", err)
	}

	return SplitBlocks(stdout.String()), nil
}

// SplitBlocks splits OCR plain text into blocks separated by blank lines.
// Form feeds that end each page are treated as blank lines.
func SplitBlocks(text string) []string {
	return translate.SplitParagraphs(strings.ReplaceAll(text, "\f", "\n\n"))
}
