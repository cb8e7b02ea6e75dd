package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/core"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/ocr"
	"github.com/nodewee/doc-translate/pkg/ocr/engines"
	"github.com/nodewee/doc-translate/pkg/providers"
	"github.com/nodewee/doc-translate/pkg/translate"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// AppHandler wires configuration, the translation client and the OCR stack
// for one command invocation
type AppHandler struct {
	config *config.Config
	logger *logger.Logger
	cache  *translate.CachingTranslator
}

// NewAppHandler creates an application handler
func NewAppHandler() *AppHandler {
	return &AppHandler{}
}

// initialize loads the config layers, applies the flags the user set on cmd
// and validates the result
func (h *AppHandler) initialize(cmd *cobra.Command) error {
	if sourceDir == "" {
		return utils.NewValidationError("--source-dir is required", nil)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return utils.WrapError(err, "", "failed to load configuration")
	}
	h.config = cfg
	h.applyCommandLineOverrides(cmd)

	if err := h.config.Validate(); err != nil {
		return err
	}

	h.logger = logger.NewLogger(h.config.LogLevel, h.config.EnableVerbose)
	h.logger.Debug("Configuration: %s", h.config)
	return nil
}

// applyCommandLineOverrides applies the flags explicitly given on the
// command line, the highest configuration layer
func (h *AppHandler) applyCommandLineOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("url") {
		h.config.LibreTranslateURL = serverURL
	}
	if flags.Changed("source-lang") {
		h.config.SourceLang = sourceLang
	}
	if flags.Changed("target-lang") {
		h.config.TargetLang = targetLang
	}
	if flags.Changed("concurrency") {
		h.config.MaxConcurrency = concurrency
	}
	if flags.Changed("include") {
		h.config.Include = includes
	}
	if flags.Changed("exclude") {
		h.config.Exclude = excludes
	}
	if verbose {
		h.config.EnableVerbose = true
	}

	// translate flags
	if flags.Changed("content-type") {
		h.config.ContentType = types.ContentType(contentType)
	}
	if flags.Changed("ocr") {
		h.config.OCRStrategy = types.OCRStrategy(ocrStrategy)
	}
	if flags.Changed("dpi") {
		h.config.RenderDPI = renderDPI
	}
	if overwrite {
		h.config.Overwrite = true
	}
	if copyUnsupported {
		h.config.CopyUnsupported = true
	}

	// filenames flags
	if dryRun {
		h.config.DryRun = true
	}
	if renameDirs {
		h.config.RenameDirs = true
	}
}

// runContext bounds a run by the configured timeout and cancels it on
// interrupt
func (h *AppHandler) runContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout())
	return ctx, func() {
		cancel()
		stop()
	}
}

// newTranslator connects to LibreTranslate, checks that it offers the
// configured language pair and wraps the client in a cache
func (h *AppHandler) newTranslator(ctx context.Context) (*translate.CachingTranslator, error) {
	client, err := translate.NewLibreTranslateClient(translate.Options{
		BaseURL:           h.config.LibreTranslateURL,
		APIKey:            h.config.LibreTranslateAPIKey,
		Source:            h.config.SourceLang,
		Target:            h.config.TargetLang,
		Timeout:           h.config.RequestTimeout(),
		RequestsPerSecond: h.config.RequestsPerSecond,
		MaxRetries:        h.config.MaxRetries,
	}, h.logger)
	if err != nil {
		return nil, err
	}

	if err := client.CheckLanguagePair(ctx); err != nil {
		return nil, err
	}
	h.logger.Progress("🌐", "Translating %s → %s via %s",
		translate.LanguageName(client.Source()), translate.LanguageName(client.Target()), h.config.LibreTranslateURL)

	h.cache = translate.NewCachingTranslator(client)
	return h.cache, nil
}

// dependencies builds the OCR engine, page renderer and text layer reader.
// Missing tools disable the handlers that need them instead of failing.
func (h *AppHandler) dependencies(translator *translate.CachingTranslator) core.Dependencies {
	deps := core.Dependencies{
		Translator: translator,
		TextLayer:  providers.NewPDFTextLayer(),
	}

	engine, err := engines.SelectOCREngine(h.config, h.logger)
	if err != nil {
		h.logger.Warn("OCR disabled, images and PDFs will not be translated: %v", err)
		return deps
	}
	deps.OCREngine = engine

	gsPath, err := utils.FindExecutable(h.config.GhostscriptPath, constants.GetPlatformConfig().GhostscriptPaths)
	if err != nil {
		h.logger.Warn("Ghostscript not found, PDFs will not be translated: %v", err)
		return deps
	}
	deps.Renderer = ocr.NewGhostscriptRenderer(gsPath, h.config.RenderDPI, h.logger)
	return deps
}

// logCacheStats reports how many translations the cache saved
func (h *AppHandler) logCacheStats() {
	if h.cache == nil {
		return
	}
	stats := h.cache.Stats()
	h.logger.Debug("Translation cache: %d entries, %d hits, %d misses", stats.Entries, stats.Hits, stats.Misses)
}
