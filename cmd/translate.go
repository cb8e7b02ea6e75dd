package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nodewee/doc-translate/pkg/core"
)

var (
	contentType     string
	ocrStrategy     string
	overwrite       bool
	copyUnsupported bool
	renderDPI       int
)

// translateCmd translates file contents into a destination directory
var translateCmd = &cobra.Command{
	Use:   "translate <destination-dir>",
	Short: "Translate the content of every supported file into a destination directory",
	Long: `Translate the content of every supported file below --source-dir and write the
results into <destination-dir>, mirroring the source sub-directories.

Outputs:
  notes.txt, notes.md       same name, translated paragraph by paragraph
  page.html, page.mhtml     page.html.txt with the visible text translated
  report.docx               report.docx.txt, one translated sentence per line
  scan.png                  scan.png.txt with the OCR text translated
  Book.pdf                  book-page-<i>.txt and book-page-<i>.jpg per page (i from 0)

Content types for PDFs:
  image (default)  OCR every rendered page
  text             use the embedded text layer when a page has enough text, OCR otherwise`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(NewAppHandler().Translate(cmd, args[0]))
	},
}

// Translate runs the translate command into destDir
func (h *AppHandler) Translate(cmd *cobra.Command, destDir string) error {
	if err := h.initialize(cmd); err != nil {
		return err
	}

	ctx, cancel := h.runContext()
	defer cancel()

	translator, err := h.newTranslator(ctx)
	if err != nil {
		return err
	}

	factory := core.NewHandlerFactory(h.config, h.dependencies(translator), h.logger)
	h.logger.Debug("Handlers: %v", factory.ListHandlers())

	processor := core.NewContentProcessor(h.config, factory, h.logger)
	report, err := processor.Run(ctx, sourceDir, destDir)
	if report != nil {
		report.Print(h.logger)
	}
	h.logCacheStats()
	return err
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVar(&contentType, "content-type", "",
		"Content type of PDF documents (text, image). Default: image")
	translateCmd.Flags().StringVar(&ocrStrategy, "ocr", "",
		"OCR engine (gosseract, tesseract-cli). Default: gosseract")
	translateCmd.Flags().BoolVar(&overwrite, "overwrite", false,
		"Regenerate outputs that already exist")
	translateCmd.Flags().BoolVar(&copyUnsupported, "copy-unsupported", false,
		"Copy files no handler supports into the destination directory")
	translateCmd.Flags().IntVar(&renderDPI, "dpi", 0,
		"Resolution for rendering PDF pages (default: 200)")
}
