package core

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/otiai10/copy"
	"golang.org/x/sync/errgroup"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// ContentProcessor translates every supported file of a source tree into a
// destination tree
type ContentProcessor struct {
	config  *config.Config
	factory interfaces.HandlerFactory
	logger  *logger.Logger
}

// NewContentProcessor creates a new content processor
func NewContentProcessor(cfg *config.Config, factory interfaces.HandlerFactory, log *logger.Logger) *ContentProcessor {
	return &ContentProcessor{config: cfg, factory: factory, logger: log}
}

// Run walks sourceDir and translates files concurrently into destDir.
// A failing file does not stop the run; all failures are returned together
// and listed in the report.
func (p *ContentProcessor) Run(ctx context.Context, sourceDir, destDir string) (*Report, error) {
	start := time.Now()

	source, dest, err := p.resolveDirs(sourceDir, destDir)
	if err != nil {
		return nil, err
	}

	walker, err := NewWalker(source, p.config.Include, p.config.Exclude, p.logger)
	if err != nil {
		return nil, err
	}
	if utils.IsSubPath(source, dest) {
		walker.SkipDir(dest)
	}

	files, err := walker.Files(ctx)
	if err != nil {
		return nil, utils.WrapError(err, "", "failed to list source files")
	}
	p.logger.ProgressAlways("🔍", "Found %d files in %s", len(files), source)

	report := &Report{}
	var (
		mu   sync.Mutex
		errs *multierror.Error
	)

	var group errgroup.Group
	group.SetLimit(max(p.config.MaxConcurrency, 1))
	for _, info := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := p.processFile(ctx, info, dest, report); err != nil {
				mu.Lock()
				errs = multierror.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = group.Wait()

	report.Duration = time.Since(start)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return report, utils.WrapError(ctxErr, utils.ErrorTypeTimeout, "translation interrupted")
	}
	return report, errs.ErrorOrNil()
}

func (p *ContentProcessor) resolveDirs(sourceDir, destDir string) (string, string, error) {
	source, err := resolveDir(sourceDir, "source")
	if err != nil {
		return "", "", err
	}

	if destDir == "" {
		return "", "", utils.NewValidationError("destination directory is required", nil)
	}
	expanded, err := utils.ExpandPath(destDir)
	if err != nil {
		return "", "", utils.NewValidationError("invalid destination directory", err)
	}
	dest, err := filepath.Abs(expanded)
	if err != nil {
		return "", "", utils.NewValidationError("invalid destination directory", err)
	}

	if dest == source {
		return "", "", utils.NewValidationError("destination directory must differ from the source directory", nil)
	}
	if err := utils.EnsureDir(dest); err != nil {
		return "", "", utils.WrapError(err, utils.ErrorTypeIO, "failed to create destination directory")
	}
	return source, dest, nil
}

// processFile translates one file and records the outcome in report. The
// returned error is already recorded and only used for aggregation.
func (p *ContentProcessor) processFile(ctx context.Context, info *types.FileInfo, dest string, report *Report) error {
	fail := func(err error) error {
		wrapped := utils.WrapError(err, "", info.RelPath)
		report.addFailure(info.RelPath, err)
		p.logger.Error("Failed to translate %s: %v", info.RelPath, err)
		return wrapped
	}

	if err := p.validateFileSize(info); err != nil {
		return fail(err)
	}

	handler, err := p.factory.HandlerFor(info)
	if err != nil {
		if utils.GetErrorType(err) != utils.ErrorTypeUnsupported {
			return fail(err)
		}
		return p.handleUnsupported(info, dest, report, fail)
	}

	p.logger.Progress("🔄", "Translating %s (%s, %s)", info.RelPath, handler.Name(), humanize.Bytes(uint64(info.Size)))
	result, err := handler.Handle(ctx, &types.Job{Info: info, OutputDir: dest})
	if err != nil {
		return fail(err)
	}

	report.addResult(result, info.Size)
	if result.Skipped {
		p.logger.Progress("⏭️", "Skipped %s, outputs exist", info.RelPath)
	} else {
		p.logger.Progress("✅", "Translated %s in %s", info.RelPath, time.Duration(result.ProcessTime)*time.Millisecond)
	}
	return nil
}

// handleUnsupported copies a file no handler supports when configured to,
// leaving identical copies alone
func (p *ContentProcessor) handleUnsupported(info *types.FileInfo, dest string, report *Report, fail func(error) error) error {
	if !p.config.CopyUnsupported {
		p.logger.Debug("No handler for %s", info.RelPath)
		report.addUnsupported(false)
		return nil
	}

	target := filepath.Join(dest, info.RelPath)
	if utils.SameContent(info.Path, target) {
		report.addUnsupported(true)
		return nil
	}
	if err := utils.EnsureDir(filepath.Dir(target)); err != nil {
		return fail(utils.WrapError(err, utils.ErrorTypeIO, "failed to create output directory"))
	}
	if err := copy.Copy(info.Path, target); err != nil {
		return fail(utils.WrapError(err, utils.ErrorTypeIO, "failed to copy unsupported file"))
	}

	p.logger.Progress("📋", "Copied %s", info.RelPath)
	report.addUnsupported(true)
	return nil
}

// validateFileSize rejects files above the size limit and warns on large ones
func (p *ContentProcessor) validateFileSize(info *types.FileInfo) error {
	if info.Size > constants.MaxFileSize {
		return utils.NewValidationError(fmt.Sprintf("file size (%s) exceeds maximum limit (%s)",
			humanize.Bytes(uint64(info.Size)), humanize.Bytes(constants.MaxFileSize)), nil)
	}
	if info.Size > constants.WarnFileSizeLimit {
		p.logger.Warn("Large file detected %s (%s), processing may take longer",
			info.RelPath, humanize.Bytes(uint64(info.Size)))
	}
	return nil
}
