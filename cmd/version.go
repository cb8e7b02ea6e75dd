package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/ocr/engines"
	"github.com/nodewee/doc-translate/pkg/translate"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// Version information variables - set by main.go
var (
	version   = "dev"
	gitCommit = "none"
	buildTime = "unknown"
	buildBy   = "unknown"
)

// SetVersionInfo sets the version information from main.go
func SetVersionInfo(v, commit, buildTimeParam, buildByParam string) {
	version = v
	gitCommit = commit
	buildTime = buildTimeParam
	buildBy = buildByParam
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information and the active translation setup",
	Long: "Show the build, the translation server and language pair that\n" +
		"filenames and translate would use, and the OCR engine in effect.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, path := versionConfig()
		writeVersionInfo(os.Stdout, cfg, path)
	},
}

// versionConfig reads the configuration without creating a default file,
// so asking for the version never writes to disk
func versionConfig() (*config.Config, string) {
	path, err := resolvedConfigPath()
	if err != nil || !utils.FileExists(path) {
		cfg := config.NewConfig()
		config.ApplyEnvOverrides(cfg, os.Getenv)
		return cfg, ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		cfg = config.NewConfig()
	}
	return cfg, path
}

func writeVersionInfo(w io.Writer, cfg *config.Config, path string) {
	fmt.Fprintf(w, "🌐 doc-translate %s\n", version)
	fmt.Fprintf(w, "  Git Commit:  %s\n", gitCommit)
	fmt.Fprintf(w, "  Build Time:  %s\n", buildTime)
	fmt.Fprintf(w, "  Built By:    %s\n", buildBy)
	fmt.Fprintf(w, "  Go:          %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "🔤 Translation:\n")
	fmt.Fprintf(w, "  Server:      %s\n", cfg.LibreTranslateURL)
	fmt.Fprintf(w, "  Languages:   %s → %s\n",
		translate.LanguageName(cfg.SourceLang), translate.LanguageName(cfg.TargetLang))
	fmt.Fprintf(w, "  Config:      %s\n", getDisplayValue(path))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "🔍 OCR:\n")
	fmt.Fprintf(w, "  Strategy:    %s\n", cfg.OCRStrategy)
	fmt.Fprintf(w, "  Language:    %s\n", engines.OCRLanguage(cfg))
	if engines.GosseractAvailable {
		fmt.Fprintf(w, "  gosseract:   built in\n")
	} else {
		fmt.Fprintf(w, "  gosseract:   not built in (rebuild with -tags gosseract)\n")
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
