package providers

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/ocr"
	"github.com/nodewee/doc-translate/pkg/translate"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// PDFHandler renders every page, writes it as <stem>-page-<i>.jpg and the
// translated page text as <stem>-page-<i>.txt, with i counted from 0
type PDFHandler struct {
	name      string
	config    *config.Config
	engine    interfaces.OCREngine
	renderer  interfaces.PageRenderer
	textLayer interfaces.TextLayerReader
	segments  *segmentTranslator
	logger    *logger.Logger
}

// NewPDFHandler creates a new PDF handler. textLayer may be nil, in which
// case every page is OCR'd.
func NewPDFHandler(cfg *config.Config, engine interfaces.OCREngine, renderer interfaces.PageRenderer,
	textLayer interfaces.TextLayerReader, translator interfaces.Translator, log *logger.Logger) interfaces.ContentHandler {
	return &PDFHandler{
		name:      "pdf",
		config:    cfg,
		engine:    engine,
		renderer:  renderer,
		textLayer: textLayer,
		segments:  &segmentTranslator{translator: translator, logger: log},
		logger:    log,
	}
}

// pageOutputs returns the text and image output paths of page i
func pageOutputs(outDir, stem string, i int) (string, string) {
	return filepath.Join(outDir, fmt.Sprintf(constants.PDFPageTextPattern, stem, i)),
		filepath.Join(outDir, fmt.Sprintf(constants.PDFPageImagePattern, stem, i))
}

// Handle translates the document page by page. Pages whose outputs already
// exist are kept unless overwrite is set, so an interrupted run resumes. The
// page count of a rendered document is recorded next to its outputs; when it
// is known and every page is done the document is not rendered again.
func (h *PDFHandler) Handle(ctx context.Context, job *types.Job) (*interfaces.TranslationResult, error) {
	start := time.Now()
	outDir := outputDirFor(job)
	stem := lowerStem(job.Info.Name)

	texts := h.readTextLayer(ctx, job)
	manifest := manifestPath(outDir, stem)
	if !h.config.Overwrite {
		pageCount := readPageCount(manifest, job.Info)
		if pageCount == 0 {
			pageCount = len(texts)
		}
		var existing []string
		for i := 0; i < pageCount; i++ {
			txtPath, jpgPath := pageOutputs(outDir, stem, i)
			existing = append(existing, txtPath, jpgPath)
		}
		if allExist(existing...) {
			return skippedResult(job, h.name, existing...), nil
		}
	}

	workspace, err := utils.NewWorkspace(job.Info.Name, h.logger)
	if err != nil {
		return nil, err
	}

	result := &interfaces.TranslationResult{Source: job.Info.Path, Handler: h.name}
	skippedPages := 0

	err = workspace.WithCleanup(func() error {
		renderDir, err := workspace.CreateDir("pages")
		if err != nil {
			return err
		}
		pages, err := h.renderer.RenderPages(ctx, job.Info.Path, renderDir)
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return utils.WrapError(err, utils.ErrorTypeIO, "failed to create output directory")
		}
		if err := writePageCount(manifest, job.Info, len(pages)); err != nil {
			h.logger.Warn("Failed to record page count of %s: %v", job.Info.RelPath, err)
		}

		var pageErrs *multierror.Error
		for i, page := range pages {
			txtPath, jpgPath := pageOutputs(outDir, stem, i)
			if !h.config.Overwrite && allExist(txtPath, jpgPath) {
				skippedPages++
				result.Outputs = append(result.Outputs, txtPath, jpgPath)
				continue
			}

			h.logger.Progress("📄", "%s: page %d/%d", job.Info.RelPath, i+1, len(pages))
			pageResult, err := h.translatePage(ctx, job, i, page, texts, txtPath, jpgPath)
			if err != nil {
				if ctx.Err() != nil {
					return utils.WrapError(ctx.Err(), utils.ErrorTypeTimeout, "PDF translation cancelled")
				}
				pageErrs = multierror.Append(pageErrs, utils.WrapError(err, "", fmt.Sprintf("page %d", i)))
				continue
			}

			result.Outputs = append(result.Outputs, txtPath, jpgPath)
			result.Segments += pageResult.Total
			result.FailedSegments += pageResult.Failed
		}

		if skippedPages == len(pages) {
			result.Skipped = true
		}
		return pageErrs.ErrorOrNil()
	})
	if err != nil {
		return nil, err
	}

	result.ProcessTime = time.Since(start).Milliseconds()
	return result, nil
}

// translatePage writes the page image and its translated text. The text
// comes from the PDF text layer when content type is text and the layer
// holds enough characters, otherwise from OCR.
func (h *PDFHandler) translatePage(ctx context.Context, job *types.Job, index int, pagePath string,
	texts []string, txtPath, jpgPath string) (*segmentResult, error) {
	img, _, err := ocr.DecodeImageFile(pagePath)
	if err != nil {
		return nil, err
	}
	prepared := ocr.PreparePage(img, h.config.MaxImageDimension)

	if err := ocr.WriteJPEG(jpgPath, prepared, constants.DefaultJPEGQuality); err != nil {
		return nil, err
	}

	var segments []string
	if h.config.ContentType == types.ContentTypeText && index < len(texts) &&
		utf8.RuneCountInString(texts[index]) >= h.config.MinTextThreshold {
		h.logger.Debug("%s page %d: using text layer", job.Info.RelPath, index)
		segments = translate.ChunkParagraphs(texts[index], h.config.MaxChunkChars)
	} else {
		segments, err = recognize(ctx, h.engine, prepared)
		if err != nil {
			return nil, err
		}
	}

	source := fmt.Sprintf("%s page %d", job.Info.RelPath, index)
	result, err := h.segments.translateAll(ctx, source, segments)
	if err != nil {
		return nil, err
	}
	if err := writeOutput(txtPath, joinParagraphs(result.Translated)); err != nil {
		return nil, err
	}
	return result, nil
}

// readTextLayer returns per-page embedded text when it is needed for
// content extraction or for the resume check. Failures are not fatal since
// every page can still be OCR'd.
func (h *PDFHandler) readTextLayer(ctx context.Context, job *types.Job) []string {
	if h.textLayer == nil {
		return nil
	}
	if h.config.Overwrite && h.config.ContentType != types.ContentTypeText {
		return nil
	}

	texts, err := h.textLayer.PageTexts(ctx, job.Info.Path)
	if err != nil {
		h.logger.Debug("No usable text layer in %s: %v", job.Info.RelPath, err)
		return nil
	}
	return texts
}

// SupportsFile checks if this handler supports the given file type
func (h *PDFHandler) SupportsFile(fileInfo *types.FileInfo) bool {
	return supportsExtension(fileInfo, "pdf")
}

// Name returns the name of the handler
func (h *PDFHandler) Name() string {
	return h.name
}
