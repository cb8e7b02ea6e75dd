package core

import (
	"fmt"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/providers"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// Dependencies are the external services handlers delegate to
type Dependencies struct {
	Translator interfaces.Translator
	OCREngine  interfaces.OCREngine
	Renderer   interfaces.PageRenderer
	TextLayer  interfaces.TextLayerReader
}

// DefaultHandlerFactory implements HandlerFactory. Handlers are consulted in
// registration order, most recent first.
type DefaultHandlerFactory struct {
	handlers []interfaces.ContentHandler
	config   *config.Config
	logger   *logger.Logger
}

// NewHandlerFactory creates a factory with the default handlers registered
func NewHandlerFactory(cfg *config.Config, deps Dependencies, log *logger.Logger) *DefaultHandlerFactory {
	factory := NewEmptyHandlerFactory(cfg, log)
	factory.registerDefaultHandlers(deps)
	return factory
}

// NewEmptyHandlerFactory creates a factory without handlers
func NewEmptyHandlerFactory(cfg *config.Config, log *logger.Logger) *DefaultHandlerFactory {
	return &DefaultHandlerFactory{config: cfg, logger: log}
}

// HandlerFor returns the handler for the file
func (f *DefaultHandlerFactory) HandlerFor(fileInfo *types.FileInfo) (interfaces.ContentHandler, error) {
	for i := len(f.handlers) - 1; i >= 0; i-- {
		if handler := f.handlers[i]; handler.SupportsFile(fileInfo) {
			f.logger.Debug("Selected handler '%s' for %s", handler.Name(), fileInfo.RelPath)
			return handler, nil
		}
	}
	return nil, utils.NewUnsupportedError(
		fmt.Sprintf("no handler for file type: %q (MIME: %s)", fileInfo.Extension, fileInfo.MimeType), nil)
}

// RegisterHandler registers a new handler
func (f *DefaultHandlerFactory) RegisterHandler(handler interfaces.ContentHandler) {
	f.handlers = append(f.handlers, handler)
	f.logger.Debug("Registered handler: %s", handler.Name())
}

// ListHandlers returns all registered handler names in registration order
func (f *DefaultHandlerFactory) ListHandlers() []string {
	names := make([]string, 0, len(f.handlers))
	for _, handler := range f.handlers {
		names = append(names, handler.Name())
	}
	return names
}

// registerDefaultHandlers registers the default set of handlers. OCR based
// handlers are left out when no engine is available.
func (f *DefaultHandlerFactory) registerDefaultHandlers(deps Dependencies) {
	f.RegisterHandler(providers.NewTextHandler(f.config, deps.Translator, f.logger))
	f.RegisterHandler(providers.NewHTMLHandler(f.config, deps.Translator, f.logger))
	f.RegisterHandler(providers.NewDocxHandler(f.config, deps.Translator, f.logger))

	if deps.OCREngine != nil {
		f.RegisterHandler(providers.NewImageHandler(f.config, deps.OCREngine, deps.Translator, f.logger))
		if deps.Renderer != nil {
			f.RegisterHandler(providers.NewPDFHandler(f.config, deps.OCREngine, deps.Renderer,
				deps.TextLayer, deps.Translator, f.logger))
		}
	}

	f.logger.Debug("Registered %d handlers: %v", len(f.handlers), f.ListHandlers())
}
