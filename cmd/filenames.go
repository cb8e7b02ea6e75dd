package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodewee/doc-translate/pkg/core"
	"github.com/nodewee/doc-translate/pkg/utils"
)

var (
	dryRun     bool
	renameDirs bool
)

// filenamesCmd translates file names in place
var filenamesCmd = &cobra.Command{
	Use:   "filenames",
	Short: "Rename files in place to the translation of their names",
	Long: `Translate the name of every file below --source-dir and rename it in place.

Extensions are kept, including compound ones such as .tar.gz. Names whose
translation is empty or unchanged are left alone, and a name already taken in
the same directory gets a " (n)" suffix. Every rename is printed as "old -> new".`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(NewAppHandler().Filenames(cmd))
	},
}

// Filenames runs the filenames command
func (h *AppHandler) Filenames(cmd *cobra.Command) error {
	if err := h.initialize(cmd); err != nil {
		return err
	}

	ctx, cancel := h.runContext()
	defer cancel()

	translator, err := h.newTranslator(ctx)
	if err != nil {
		return err
	}

	renamer := core.NewFilenameTranslator(h.config, translator, h.logger, os.Stdout)
	report, err := renamer.Run(ctx, sourceDir)
	if report != nil {
		report.Print(h.logger, h.config.DryRun)
	}
	h.logCacheStats()
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return utils.NewTranslationError(fmt.Sprintf("%d names could not be translated", report.Failed), nil)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(filenamesCmd)

	filenamesCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Print the planned renames without renaming anything")
	filenamesCmd.Flags().BoolVar(&renameDirs, "dirs", false,
		"Also rename directories, deepest first")
}
