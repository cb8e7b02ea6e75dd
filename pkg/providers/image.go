package providers

import (
	"context"
	"image"
	"strings"
	"time"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/ocr"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// ImageHandler OCRs an image and writes the translated blocks to <name>.txt
type ImageHandler struct {
	name     string
	config   *config.Config
	engine   interfaces.OCREngine
	segments *segmentTranslator
	logger   *logger.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(cfg *config.Config, engine interfaces.OCREngine, translator interfaces.Translator, log *logger.Logger) interfaces.ContentHandler {
	return &ImageHandler{
		name:     "image",
		config:   cfg,
		engine:   engine,
		segments: &segmentTranslator{translator: translator, logger: log},
		logger:   log,
	}
}

// Handle recognizes text blocks and translates each of them
func (h *ImageHandler) Handle(ctx context.Context, job *types.Job) (*interfaces.TranslationResult, error) {
	start := time.Now()
	outPath := textOutputPath(job)
	if !h.config.Overwrite && utils.FileExists(outPath) {
		return skippedResult(job, h.name, outPath), nil
	}

	img, _, err := ocr.DecodeImageFile(job.Info.Path)
	if err != nil {
		return nil, err
	}

	blocks, err := recognize(ctx, h.engine, img)
	if err != nil {
		return nil, utils.WrapError(err, "", job.Info.RelPath)
	}
	h.logger.Debug("%s: %d text blocks", job.Info.RelPath, len(blocks))

	result, err := h.segments.translateAll(ctx, job.Info.RelPath, blocks)
	if err != nil {
		return nil, err
	}
	if err := writeOutput(outPath, joinParagraphs(result.Translated)); err != nil {
		return nil, err
	}

	return &interfaces.TranslationResult{
		Source:         job.Info.Path,
		Handler:        h.name,
		Outputs:        []string{outPath},
		Segments:       result.Total,
		FailedSegments: result.Failed,
		ProcessTime:    time.Since(start).Milliseconds(),
	}, nil
}

// Sniffed MIME types the registered image decoders can read
var decodableImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/webp": true,
	"image/tiff": true,
}

// SupportsFile accepts image extensions, and files whose extension says
// nothing but whose content sniffs as a decodable image
func (h *ImageHandler) SupportsFile(fileInfo *types.FileInfo) bool {
	if utils.IsImageFile(fileInfo.Extension) {
		return true
	}
	return fileInfo.MediaType == types.ImageMediaType && decodableImageTypes[fileInfo.MimeType]
}

// Name returns the name of the handler
func (h *ImageHandler) Name() string {
	return h.name
}

// recognize runs OCR on img and drops blank blocks
func recognize(ctx context.Context, engine interfaces.OCREngine, img image.Image) ([]string, error) {
	data, err := ocr.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	blocks, err := engine.RecognizeBlocks(ctx, data)
	if err != nil {
		return nil, utils.WrapError(err, "", "text recognition failed")
	}

	kept := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block = strings.TrimSpace(block); block != "" {
			kept = append(kept, block)
		}
	}
	return kept, nil
}
