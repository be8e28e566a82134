// Package observability provides formatted operator-facing output for the importer CLI.
package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/jonathan/resume-importer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for import results
type Printer struct {
	out          io.Writer
	warn         io.Writer
	colorEnabled bool
	warnColor    bool
}

// NewPrinter creates a new Printer that writes to the given writer. Warnings
// go to the same writer until SetWarnOutput is called. Color is only used
// when writing to a terminal stdout/stderr.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:          out,
		warn:         out,
		colorEnabled: isTerminal(out),
		warnColor:    isTerminal(out),
	}
}

// SetWarnOutput routes warning lines to w. Color for warnings follows w, not
// the main output.
func (p *Printer) SetWarnOutput(w io.Writer) {
	p.warn = w
	p.warnColor = isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	return w == os.Stdout || w == os.Stderr
}

func paint(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if !enabled {
		c.DisableColor()
	}
	return c
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", fitLine(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %s │\n", fitLine(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fitLine truncates or pads line to exactly width runes.
func fitLine(line string, width int) string {
	runes := []rune(line)
	if len(runes) > width {
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-utf8.RuneCountInString(line))
}

// PrintImported outputs the confirmation line for one successful import.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintImported(localeCode string, mode types.WriteMode, filePath string) {
	paint(p.colorEnabled, color.FgGreen).Fprintf(p.out, "✅ Imported %s (%s) from %s\n", localeCode, mode.PastTense(), filePath)
}

// PrintSkipped outputs the warning line for an optional import that failed.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintSkipped(localeCode, reason string) {
	paint(p.warnColor, color.FgYellow).Fprintf(p.warn, "⚠️ Skipping %s import (%s).\n", localeCode, reason)
}

// PrintSummary outputs a one-line run summary.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummary(runID string, mode types.WriteMode, imported, skipped int) {
	fmt.Fprintf(p.out, "Run %s finished: %d imported, %d skipped (mode: %s)\n", runID, imported, skipped, mode)
}

// PrintTargets outputs the resolved import targets.
func (p *Printer) PrintTargets(collection string, targets []types.ImportTarget) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Collection: %s\n\n", collection))
	for _, t := range targets {
		kind := "optional"
		if t.Required {
			kind = "required"
		}
		sb.WriteString(fmt.Sprintf("  • %s  %s  (%s)\n", t.LocaleCode, t.FilePath, kind))
	}
	p.printBox("IMPORT TARGETS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs a summary box of the document's top-level fields
// followed by the full document as indented JSON.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDocument(collection, id string, doc map[string]any) error {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fields: %d\n", len(keys)))
	count := min(len(keys), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s (%s)\n", keys[i], describeValue(doc[keys[i]])))
	}
	if len(keys) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(keys)-maxItemsToShow))
	}
	p.printBox(fmt.Sprintf("DOCUMENT %s/%s", collection, id), strings.TrimSuffix(sb.String(), "\n"))

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	fmt.Fprintf(p.out, "%s\n", jsonBytes)
	return nil
}

func describeValue(v any) string {
	switch val := v.(type) {
	case map[string]any:
		return fmt.Sprintf("object, %d fields", len(val))
	case []any:
		return fmt.Sprintf("array, %d items", len(val))
	case string:
		return "string"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return "number"
	}
}
