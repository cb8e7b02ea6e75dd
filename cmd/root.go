package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodewee/doc-translate/pkg/utils"
)

var (
	sourceDir   string
	configPath  string
	serverURL   string
	sourceLang  string
	targetLang  string
	concurrency int
	includes    []string
	excludes    []string
	verbose     bool
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "doc-translate",
	Short: "Translate file names and document contents through a LibreTranslate server",
	Long: `A CLI tool that translates a directory of documents with a self-hosted LibreTranslate server.

Commands:
- filenames: translate the names of files (and optionally directories) in place
- translate: translate the content of text, Markdown, HTML/MHTML, DOCX, image and
  PDF files into a destination directory

Images and PDF pages are read with Tesseract OCR. PDF pages are rendered with
Ghostscript and saved next to their translation as JPEG files. With
--content-type text the embedded PDF text layer is used when a page has one.

Existing outputs are skipped, so an interrupted run can simply be restarted.
Use --overwrite to regenerate them.

Examples:
  doc-translate -s ./docs filenames --dry-run              # Show planned renames
  doc-translate -s ./docs filenames --dirs                 # Rename files and directories
  doc-translate -s ./docs translate ./docs-en              # Translate contents into ./docs-en
  doc-translate -s ./scans translate ./out --ocr tesseract-cli --dpi 300
  doc-translate -s ./docs --source-lang de --target-lang en translate ./out
  doc-translate -s ./docs --include "**/*.pdf" -v translate ./out`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Printf("doc-translate %s\n", version)
			return
		}
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// exitOnError prints err in the "Error (<type>): <message>" form and exits
func exitOnError(err error) {
	if err == nil {
		return
	}
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		log.Fatalf("Error (%s): %s", appErr.Type, appErr.Message)
	}
	log.Fatalf("Error: %v", err)
}

func init() {
	log.SetFlags(0)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&sourceDir, "source-dir", "s", "",
		"Directory to translate (required by filenames and translate)")
	flags.StringVar(&configPath, "config", "",
		"Config file path (default: ~/.doc-translate/config.yaml)")
	flags.StringVar(&serverURL, "url", "",
		"LibreTranslate base URL (default: http://localhost:5000)")
	flags.StringVar(&sourceLang, "source-lang", "",
		"Language to translate from (default: ru)")
	flags.StringVar(&targetLang, "target-lang", "",
		"Language to translate into (default: en)")
	flags.IntVarP(&concurrency, "concurrency", "j", 0,
		"Number of files processed in parallel (default: 4)")
	flags.StringArrayVar(&includes, "include", nil,
		"Only process paths matching this glob, relative to the source dir (repeatable)")
	flags.StringArrayVar(&excludes, "exclude", nil,
		"Skip paths matching this glob, relative to the source dir (repeatable)")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output to show progress information")

	rootCmd.Flags().BoolVarP(&showVersion, "version", "V", false,
		"Show version information")
}
