package constants

import "time"

// Application constants
const (
	AppName       = "doc-translate"
	AppDirName    = ".doc-translate"
	ConfigFileEnv = "DOC_TRANSLATE_CONFIG"
)

// File processing constants
const (
	DefaultFilePermission = 0644
	DefaultDirPermission  = 0755

	TranslatedTextExtension = ".txt"

	// PDF outputs, index is 0-based
	PDFPageTextPattern  = "%s-page-%d.txt"
	PDFPageImagePattern = "%s-page-%d.jpg"
	PDFManifestPattern  = ".%s-pages.yaml"

	// Ghostscript numbers rendered pages from 1
	RenderedPagePattern = "page-%d.png"
	MaxRenderedPages    = 10000
)

// Retry and timeout settings
const (
	DefaultMaxRetries     = 3
	DefaultRetryBaseDelay = 500 * time.Millisecond
	DefaultRequestTimeout = 60 * time.Second
)

// Rendering defaults
const (
	DefaultRenderDPI         = 200
	DefaultMaxImageDimension = 2000
	DefaultJPEGQuality       = 90
)

// Translation request sizing
const (
	DefaultMaxChunkChars = 2000
	MinChunkChars        = 50
)

// File size limits (in bytes)
const (
	MaxFileSize       = 500 * 1024 * 1024 // 500MB
	WarnFileSizeLimit = 50 * 1024 * 1024  // 50MB
)

// File type groups
var (
	ImageExtensions = []string{
		"png", "jpg", "jpeg", "gif", "bmp",
		"tif", "tiff", "webp",
	}

	TextExtensions = []string{
		"txt", "md", "markdown",
	}

	HTMLExtensions = []string{
		"html", "htm",
	}

	// Extensions that belong to the file name rather than to a format
	CompoundExtensions = []string{
		".tar.gz", ".tar.bz2", ".tar.xz", ".tar.zst",
	}
)
