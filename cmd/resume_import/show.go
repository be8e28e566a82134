package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/store"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:          "show <locale>",
	Short:        "Print a stored locale document",
	Long:         "Reads the document for a locale back from the document store and prints it as indented JSON.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig("")
	if err != nil {
		return err
	}
	return executeShow(cmd.Context(), cfg, args[0], cmd.OutOrStdout(), store.Open)
}

func executeShow(ctx context.Context, cfg *config.Config, localeCode string, out io.Writer, open storeOpener) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openStore(ctx, cfg, open)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	doc, err := s.Get(ctx, cfg.Collection, localeCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("document %s/%s not found", cfg.Collection, localeCode)
		}
		return fmt.Errorf("failed to read document: %w", err)
	}

	return observability.NewPrinter(out).PrintDocument(cfg.Collection, localeCode, doc)
}
