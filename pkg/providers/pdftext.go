package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/nodewee/doc-translate/pkg/utils"
)

// PDFTextLayer reads embedded page text with github.com/ledongthuc/pdf
type PDFTextLayer struct{}

func NewPDFTextLayer() *PDFTextLayer {
	return &PDFTextLayer{}
}

// PageTexts returns the plain text of every page, empty for pages without
// a text layer
func (l *PDFTextLayer) PageTexts(ctx context.Context, pdfPath string) (texts []string, err error) {
	// The parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			texts = nil
			err = utils.NewConversionError(fmt.Sprintf("failed to parse PDF text layer: %v", r), nil)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, utils.NewConversionError("failed to open PDF", err)
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	texts = make([]string, numPages)

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, utils.WrapError(err, utils.ErrorTypeTimeout, "text layer extraction cancelled")
		}

		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			return nil, utils.NewConversionError(fmt.Sprintf("failed to read PDF page %d", i), pageErr)
		}
		texts[i-1] = strings.TrimSpace(text)
	}

	return texts, nil
}
