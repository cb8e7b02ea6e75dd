package providers

import (
	"context"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

var (
	inlineSpaceRe   = regexp.MustCompile(`[ \t]+`)
	extraNewlinesRe = regexp.MustCompile(`\n\s*\n\s*\n+`)
	newlineSpaceRe  = regexp.MustCompile(` *\n *`)
)

// HTMLHandler translates the visible text of HTML and MHTML pages into
// <name>.txt
type HTMLHandler struct {
	name     string
	config   *config.Config
	segments *segmentTranslator
	logger   *logger.Logger
}

// NewHTMLHandler creates a new HTML handler
func NewHTMLHandler(cfg *config.Config, translator interfaces.Translator, log *logger.Logger) interfaces.ContentHandler {
	return &HTMLHandler{
		name:     "html",
		config:   cfg,
		segments: &segmentTranslator{translator: translator, logger: log},
		logger:   log,
	}
}

// Handle extracts readable text and translates it paragraph by paragraph
func (h *HTMLHandler) Handle(ctx context.Context, job *types.Job) (*interfaces.TranslationResult, error) {
	start := time.Now()
	outPath := textOutputPath(job)
	if !h.config.Overwrite && utils.FileExists(outPath) {
		return skippedResult(job, h.name, outPath), nil
	}

	content, err := os.ReadFile(job.Info.Path)
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to read file")
	}

	contentType := ""
	if supportsExtension(job.Info, "mhtml", "mht") {
		part, partType, err := extractMHTMLPart(content)
		if err != nil {
			h.logger.Warn("Reading %s as plain HTML: %v", job.Info.RelPath, err)
		} else {
			content, contentType = part, partType
		}
	}

	reader, err := htmlReader(content, contentType)
	if err != nil {
		return nil, err
	}
	text, err := h.extractTextFromHTML(reader)
	if err != nil {
		return nil, err
	}

	return translateChunksTo(ctx, h.segments, job, h.name, text, h.config.MaxChunkChars, outPath, start)
}

// SupportsFile checks if this handler supports the given file type
func (h *HTMLHandler) SupportsFile(fileInfo *types.FileInfo) bool {
	return utils.IsHTMLFile(fileInfo.Extension) || supportsExtension(fileInfo, "mhtml", "mht")
}

// Name returns the name of the handler
func (h *HTMLHandler) Name() string {
	return h.name
}

// extractTextFromHTML extracts readable text from HTML content
func (h *HTMLHandler) extractTextFromHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", utils.NewConversionError("failed to parse HTML", err)
	}

	var textBuilder strings.Builder
	h.extractTextFromNode(doc, &textBuilder)

	return h.cleanupText(textBuilder.String()), nil
}

// Elements whose content is never shown as page text
var skippedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Head:     true,
	atom.Template: true,
}

// Block-level elements start and end a paragraph
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Blockquote: true, atom.Pre: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Article: true, atom.Section: true, atom.Header: true, atom.Footer: true,
	atom.Nav: true, atom.Aside: true, atom.Main: true, atom.Figcaption: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Table: true, atom.Caption: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.Form: true, atom.Fieldset: true, atom.Address: true,
}

// extractTextFromNode walks the tree, separating block elements with blank
// lines and inline runs with single spaces
func (h *HTMLHandler) extractTextFromNode(node *html.Node, textBuilder *strings.Builder) {
	if node.Type == html.ElementNode {
		if skippedElements[node.DataAtom] {
			return
		}
		if node.DataAtom == atom.Br {
			textBuilder.WriteString("\n")
			return
		}
		if blockElements[node.DataAtom] {
			textBuilder.WriteString("\n\n")
		}
	}

	if node.Type == html.TextNode {
		if text := strings.TrimSpace(node.Data); text != "" {
			if needsSpace(textBuilder) {
				textBuilder.WriteString(" ")
			}
			textBuilder.WriteString(text)
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		h.extractTextFromNode(child, textBuilder)
	}

	if node.Type == html.ElementNode && blockElements[node.DataAtom] {
		textBuilder.WriteString("\n\n")
	}
}

// needsSpace reports whether inline text must be separated from what the
// builder already holds
func needsSpace(textBuilder *strings.Builder) bool {
	current := textBuilder.String()
	if current == "" {
		return false
	}
	last := current[len(current)-1]
	return last != ' ' && last != '\n'
}

// cleanupText collapses whitespace while keeping blank lines between blocks
func (h *HTMLHandler) cleanupText(text string) string {
	text = inlineSpaceRe.ReplaceAllString(text, " ")
	text = newlineSpaceRe.ReplaceAllString(text, "\n")
	text = extraNewlinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
