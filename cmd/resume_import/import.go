package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/importer"
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/prompt"
	"github.com/jonathan/resume-importer/internal/store"
	"github.com/jonathan/resume-importer/internal/types"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import locale resume files into the document store",
	Long: `Asks once whether to MERGE into or REPLACE the existing documents, then imports
every configured locale file. The English locale is required: if it fails the
run stops with a non-zero exit. Other locales are optional: a failure is
reported as a warning and the run still succeeds.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runImport,
}

var (
	importMode   string
	importDryRun bool
)

func init() {
	importCmd.Flags().StringVarP(&importMode, "mode", "m", "", "Write mode (merge or replace); skips the interactive prompt")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and write to an in-memory store; nothing is persisted")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	backend := ""
	if importDryRun {
		backend = string(store.BackendMemory)
	}

	cfg, err := resolveConfig(backend)
	if err != nil {
		return err
	}

	return executeImport(cmd.Context(), cfg, importMode, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), store.Open)
}

// executeImport runs one import: open the store, resolve the write mode,
// import every target. The run summary is only printed in verbose mode.
func executeImport(ctx context.Context, cfg *config.Config, modeFlag string, in io.Reader, out, errOut io.Writer, open storeOpener) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var mode types.WriteMode
	var err error
	if modeFlag != "" {
		mode, err = types.ParseWriteMode(modeFlag)
		if err != nil {
			return err
		}
	}

	s, err := openStore(ctx, cfg, open)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if modeFlag == "" {
		mode, err = prompt.ResolveWriteMode(prompt.FromReader(in, out))
		if err != nil {
			return err
		}
	}

	printer := observability.NewPrinter(out)
	printer.SetWarnOutput(errOut)

	im := importer.New(s, cfg.Collection, printer)
	im.SetVerbose(cfg.Verbose)

	report, err := im.Run(ctx, cfg.Targets, mode)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintSummary(report.RunID.String(), report.Mode, len(report.Imported), len(report.Skipped))
	}
	if mem, ok := s.(*store.Memory); ok {
		_, _ = fmt.Fprintf(out, "Dry run: %d document(s) held in memory, nothing persisted\n", mem.Len(cfg.Collection))
	}
	return nil
}
