package interfaces

import (
	"context"

	"github.com/nodewee/doc-translate/pkg/types"
)

// ContentHandler translates one kind of file into the destination tree
type ContentHandler interface {
	// Handle translates the job's file and writes outputs under job.OutputDir
	Handle(ctx context.Context, job *types.Job) (*TranslationResult, error)

	// SupportsFile checks if this handler supports the given file type
	SupportsFile(fileInfo *types.FileInfo) bool

	// Name returns the name of the handler
	Name() string
}

// HandlerFactory selects handlers based on file type
type HandlerFactory interface {
	// HandlerFor returns the handler for the file or an unsupported error
	HandlerFor(fileInfo *types.FileInfo) (ContentHandler, error)

	// RegisterHandler registers a handler, later registrations win
	RegisterHandler(handler ContentHandler)

	// ListHandlers returns all registered handler names
	ListHandlers() []string
}

// TranslationResult holds the outcome of translating one file
type TranslationResult struct {
	Source         string   `json:"source"`
	Handler        string   `json:"handler"`
	Outputs        []string `json:"outputs,omitempty"`
	Segments       int      `json:"segments"`
	FailedSegments int      `json:"failed_segments"`
	Skipped        bool     `json:"skipped,omitempty"`
	ProcessTime    int64    `json:"process_time_ms"`
}
