package types

import "time"

// MediaType represents different types of media files
type MediaType string

const (
	DocumentMediaType MediaType = "document"
	ImageMediaType    MediaType = "image"
	TextMediaType     MediaType = "text"
	OtherMediaType    MediaType = "other"
)

// OCRStrategy selects the OCR engine implementation
type OCRStrategy string

const (
	OCRStrategyGosseract    OCRStrategy = "gosseract"     // In-process Tesseract through cgo bindings
	OCRStrategyTesseractCLI OCRStrategy = "tesseract-cli" // tesseract binary as a subprocess
)

// ContentType represents the type of content in a PDF document
type ContentType string

const (
	ContentTypeText  ContentType = "text"  // Use the embedded text layer when present
	ContentTypeImage ContentType = "image" // OCR every rendered page
)

// FileInfo contains basic information about a file found in the source tree
type FileInfo struct {
	Path      string    `json:"path"`
	RelPath   string    `json:"rel_path"`
	Name      string    `json:"name"`
	Extension string    `json:"extension"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	ModTime   time.Time `json:"mod_time"`
	MediaType MediaType `json:"media_type"`
}

// Job describes one file to be translated into OutputDir
type Job struct {
	Info      *FileInfo
	OutputDir string
}

// Language is a language offered by the translation server
type Language struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Targets []string `json:"targets,omitempty"`
}

// RenamePlan is a single planned rename produced by filename translation
type RenamePlan struct {
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
	IsDir   bool   `json:"is_dir"`
	Depth   int    `json:"depth"`
}
