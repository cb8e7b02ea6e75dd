//go:build !gosseract

package engines

import (
	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
)

// GosseractAvailable reports whether in-process Tesseract is compiled in
const GosseractAvailable = false

// NewGosseractEngine returns ErrGosseractNotEnabled. Build with
// -tags gosseract for the in-process engine.
func NewGosseractEngine(language, tessdataPrefix string, log *logger.Logger) (interfaces.OCREngine, error) {
	return nil, ErrGosseractNotEnabled
}
