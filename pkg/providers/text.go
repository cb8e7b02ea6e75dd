package providers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/translate"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// TextHandler translates plain text and Markdown files, keeping the file
// name and the paragraph structure
type TextHandler struct {
	name     string
	config   *config.Config
	segments *segmentTranslator
	logger   *logger.Logger
}

// NewTextHandler creates a new plain text handler
func NewTextHandler(cfg *config.Config, translator interfaces.Translator, log *logger.Logger) interfaces.ContentHandler {
	return &TextHandler{
		name:     "text",
		config:   cfg,
		segments: &segmentTranslator{translator: translator, logger: log},
		logger:   log,
	}
}

// Handle translates the file paragraph by paragraph
func (h *TextHandler) Handle(ctx context.Context, job *types.Job) (*interfaces.TranslationResult, error) {
	start := time.Now()
	outPath := filepath.Join(outputDirFor(job), job.Info.Name)
	if !h.config.Overwrite && utils.FileExists(outPath) {
		return skippedResult(job, h.name, outPath), nil
	}

	content, err := os.ReadFile(job.Info.Path)
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "error reading text file")
	}

	return translateChunksTo(ctx, h.segments, job, h.name, string(content), h.config.MaxChunkChars, outPath, start)
}

// SupportsFile checks if this handler supports the given file type
func (h *TextHandler) SupportsFile(fileInfo *types.FileInfo) bool {
	return utils.IsTextFile(fileInfo.Extension)
}

// Name returns the name of the handler
func (h *TextHandler) Name() string {
	return h.name
}

// translateChunksTo chunks text by paragraph, translates it and writes the
// paragraphs joined by blank lines to outPath
func translateChunksTo(ctx context.Context, segments *segmentTranslator, job *types.Job, handler, text string, maxChars int, outPath string, start time.Time) (*interfaces.TranslationResult, error) {
	chunks := translate.ChunkParagraphs(text, maxChars)
	result, err := segments.translateAll(ctx, job.Info.RelPath, chunks)
	if err != nil {
		return nil, err
	}

	if err := writeOutput(outPath, joinParagraphs(result.Translated)); err != nil {
		return nil, err
	}

	return &interfaces.TranslationResult{
		Source:         job.Info.Path,
		Handler:        handler,
		Outputs:        []string{outPath},
		Segments:       result.Total,
		FailedSegments: result.Failed,
		ProcessTime:    time.Since(start).Milliseconds(),
	}, nil
}

func joinParagraphs(paragraphs []string) string {
	if len(paragraphs) == 0 {
		return ""
	}
	return strings.Join(paragraphs, "\n\n") + "\n"
}

func skippedResult(job *types.Job, handler string, outputs ...string) *interfaces.TranslationResult {
	return &interfaces.TranslationResult{
		Source:  job.Info.Path,
		Handler: handler,
		Outputs: outputs,
		Skipped: true,
	}
}
