package interfaces

import "context"

// OCREngine recognizes text in an encoded image
type OCREngine interface {
	// Name returns the engine name
	Name() string

	// RecognizeBlocks returns the text of each layout block in reading order
	RecognizeBlocks(ctx context.Context, image []byte) ([]string, error)
}

// PageRenderer rasterizes document pages
type PageRenderer interface {
	// RenderPages renders every page of pdfPath into outDir and returns the
	// image paths in page order
	RenderPages(ctx context.Context, pdfPath, outDir string) ([]string, error)
}

// TextLayerReader reads embedded page text from a PDF
type TextLayerReader interface {
	// PageTexts returns the plain text of each page in order
	PageTexts(ctx context.Context, pdfPath string) ([]string, error)
}
