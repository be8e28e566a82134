package importer

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jonathan/resume-importer/internal/types"
)

// Skip records an optional target whose import failed.
type Skip struct {
	LocaleCode string
	FilePath   string
	Reason     string
	Err        error
}

// Report summarizes one run.
type Report struct {
	RunID    uuid.UUID
	Mode     types.WriteMode
	Imported []string
	Skipped  []Skip
}

// Run imports targets one at a time, in order, with the same mode. The first
// failing required target stops the run and its error is returned; later
// targets are not attempted. Any failure of an optional target, whatever its
// kind, is printed as a single warning and recorded in the report.
func (im *Importer) Run(ctx context.Context, targets []types.ImportTarget, mode types.WriteMode) (*Report, error) {
	report := &Report{RunID: uuid.New(), Mode: mode}

	for _, target := range targets {
		if err := target.Validate(); err != nil {
			return report, fmt.Errorf("invalid import target %q: %w", target.LocaleCode, err)
		}
	}

	for _, target := range targets {
		err := im.ImportLocale(ctx, target.LocaleCode, target.FilePath, mode)
		if err == nil {
			report.Imported = append(report.Imported, target.LocaleCode)
			continue
		}

		if target.Required {
			return report, fmt.Errorf("required import %s failed: %w", target.LocaleCode, err)
		}

		reason := describeFailure(err)
		if im.verbose {
			log.Printf("[import %s] optional locale %s failed: %v", report.RunID, target.LocaleCode, err)
		}
		im.printer.PrintSkipped(target.LocaleCode, reason)
		report.Skipped = append(report.Skipped, Skip{
			LocaleCode: target.LocaleCode,
			FilePath:   target.FilePath,
			Reason:     reason,
			Err:        err,
		})
	}

	return report, nil
}
