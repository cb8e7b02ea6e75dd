package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// GhostscriptRenderer rasterizes PDF pages to PNG files with Ghostscript
type GhostscriptRenderer struct {
	gsPath string
	dpi    int
	logger *logger.Logger
}

func NewGhostscriptRenderer(gsPath string, dpi int, log *logger.Logger) *GhostscriptRenderer {
	if dpi <= 0 {
		dpi = constants.DefaultRenderDPI
	}
	if log == nil {
		log = logger.DefaultLogger()
	}
	return &GhostscriptRenderer{gsPath: gsPath, dpi: dpi, logger: log}
}

// RenderPages renders every page of pdfPath into outDir as page-N.png
// (N from 1) and returns the page paths in order
func (r *GhostscriptRenderer) RenderPages(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	if err := utils.EnsureDir(outDir); err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to create render directory")
	}

	args := []string{
		"-q",
		"-dNOPAUSE",
		"-dBATCH",
		"-dSAFER",
		"-sDEVICE=png16m",
		fmt.Sprintf("-r%d", r.dpi),
		"-dTextAlphaBits=4",
		"-dGraphicsAlphaBits=4",
		"-sOutputFile=" + filepath.Join(outDir, constants.RenderedPagePattern),
		pdfPath,
	}

	cmd := exec.CommandContext(ctx, r.gsPath, args...)
	var stderrBuilder strings.Builder
	cmd.Stderr = &stderrBuilder

	r.logger.Debug("Command: %s %s", r.gsPath, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, utils.WrapError(ctx.Err(), utils.ErrorTypeTimeout, "page rendering cancelled")
		}
		stderrOutput := strings.TrimSpace(stderrBuilder.String())
		if stderrOutput != "" {
			return nil, utils.NewRenderError(fmt.Sprintf("ghostscript failed: %s", stderrOutput), err)
		}
		return nil, utils.NewRenderError("ghostscript failed", err)
	}

	pages := collectRenderedPages(outDir)
	if len(pages) == 0 {
		return nil, utils.NewRenderError("no pages were rendered from PDF", nil)
	}

	r.logger.Debug("Rendered %d pages from %s", len(pages), pdfPath)
	return pages, nil
}

// collectRenderedPages lists consecutive non-empty page files starting at 1
func collectRenderedPages(outDir string) []string {
	var pages []string
	for i := 1; i <= constants.MaxRenderedPages; i++ {
		pageFile := filepath.Join(outDir, fmt.Sprintf(constants.RenderedPagePattern, i))
		info, err := os.Stat(pageFile)
		if err != nil || info.Size() == 0 {
			break
		}
		pages = append(pages, pageFile)
	}
	return pages
}
