package providers

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"io"
	"strings"
	"time"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/translate"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

const (
	docxBodyPart = "word/document.xml"
	wordMLNS     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// DocxHandler translates the body text of Word documents sentence by
// sentence into <name>.txt, one translated sentence per line. Paragraphs
// always start a new sentence.
type DocxHandler struct {
	name     string
	config   *config.Config
	segments *segmentTranslator
	logger   *logger.Logger
}

// NewDocxHandler creates a new DOCX handler
func NewDocxHandler(cfg *config.Config, translator interfaces.Translator, log *logger.Logger) interfaces.ContentHandler {
	return &DocxHandler{
		name:     "docx",
		config:   cfg,
		segments: &segmentTranslator{translator: translator, logger: log},
		logger:   log,
	}
}

// Handle splits the body text into sentences and translates each one
func (h *DocxHandler) Handle(ctx context.Context, job *types.Job) (*interfaces.TranslationResult, error) {
	start := time.Now()
	outPath := textOutputPath(job)
	if !h.config.Overwrite && utils.FileExists(outPath) {
		return skippedResult(job, h.name, outPath), nil
	}

	text, err := ReadDocxText(job.Info.Path)
	if err != nil {
		return nil, err
	}

	sentences := translate.SplitSentences(text)
	h.logger.Debug("%s: %d sentences", job.Info.RelPath, len(sentences))

	result, err := h.segments.translateAll(ctx, job.Info.RelPath, sentences)
	if err != nil {
		return nil, err
	}

	var out strings.Builder
	for _, sentence := range result.Translated {
		out.WriteString(strings.TrimSpace(sentence))
		out.WriteString("\n")
	}
	if err := writeOutput(outPath, out.String()); err != nil {
		return nil, err
	}

	return &interfaces.TranslationResult{
		Source:         job.Info.Path,
		Handler:        h.name,
		Outputs:        []string{outPath},
		Segments:       result.Total,
		FailedSegments: result.Failed,
		ProcessTime:    time.Since(start).Milliseconds(),
	}, nil
}

// SupportsFile checks if this handler supports the given file type
func (h *DocxHandler) SupportsFile(fileInfo *types.FileInfo) bool {
	return supportsExtension(fileInfo, "docx")
}

// Name returns the name of the handler
func (h *DocxHandler) Name() string {
	return h.name
}

// ReadDocxText returns the main document text of a .docx file. Paragraphs
// end with a newline, tabs and breaks are kept.
func ReadDocxText(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", utils.NewConversionError("failed to open DOCX archive", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != docxBodyPart {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", utils.NewConversionError("failed to open document body", err)
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}

	return "", utils.NewConversionError("DOCX archive has no "+docxBodyPart, nil)
}

// parseDocumentXML collects w:t runs, mapping w:tab, w:br and w:cr to
// whitespace and closing each w:p with a newline
func parseDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var text strings.Builder
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", utils.NewConversionError("failed to parse document XML", err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Space != wordMLNS {
				continue
			}
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				text.WriteString("\t")
			case "br", "cr":
				text.WriteString("\n")
			}
		case xml.EndElement:
			if el.Name.Space != wordMLNS {
				continue
			}
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				text.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				text.Write(el)
			}
		}
	}

	return text.String(), nil
}
