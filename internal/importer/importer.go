package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"

	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/store"
	"github.com/jonathan/resume-importer/internal/types"
)

// Importer loads locale files and writes them to a Store.
type Importer struct {
	store      store.Store
	collection string
	printer    *observability.Printer
	verbose    bool
}

// New creates an Importer writing into collection. An empty collection uses
// types.DefaultCollection.
func New(s store.Store, collection string, printer *observability.Printer) *Importer {
	if collection == "" {
		collection = types.DefaultCollection
	}
	if printer == nil {
		printer = observability.NewPrinter(os.Stdout)
	}
	return &Importer{store: s, collection: collection, printer: printer}
}

// SetVerbose enables diagnostic log lines.
func (im *Importer) SetVerbose(v bool) {
	im.verbose = v
}

// ImportLocale reads filePath, parses it as a JSON object and upserts it as
// document localeCode. Nothing is written unless the file reads and parses
// cleanly. Failures are returned as *ReadError, *ParseError or *WriteError.
func (im *Importer) ImportLocale(ctx context.Context, localeCode, filePath string, mode types.WriteMode) error {
	record, err := LoadLocaleRecord(localeCode, filePath)
	if err != nil {
		return err
	}

	if im.verbose {
		log.Printf("[import] upserting %s/%s (%d top-level fields, mode=%s)", im.collection, localeCode, len(record), mode)
	}

	if err := im.store.Upsert(ctx, im.collection, localeCode, record, mode); err != nil {
		return &WriteError{LocaleCode: localeCode, Collection: im.collection, Cause: err}
	}

	im.printer.PrintImported(localeCode, mode, filePath)
	return nil
}

// LoadLocaleRecord reads and parses one locale file. The top-level JSON value
// must be an object.
func LoadLocaleRecord(localeCode, filePath string) (types.LocaleRecord, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &ReadError{LocaleCode: localeCode, Path: filePath, Cause: err}
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, &ParseError{LocaleCode: localeCode, Path: filePath, Message: "empty file"}
	}
	if trimmed[0] != '{' {
		return nil, &ParseError{LocaleCode: localeCode, Path: filePath, Message: "top-level JSON value is not an object"}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var record types.LocaleRecord
	if err := dec.Decode(&record); err != nil {
		return nil, &ParseError{
			LocaleCode: localeCode,
			Path:       filePath,
			Message:    "failed to unmarshal JSON",
			Cause:      err,
		}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{
			LocaleCode: localeCode,
			Path:       filePath,
			Message:    "unexpected data after top-level object",
			Cause:      err,
		}
	}

	return normalizeNumbers(record).(types.LocaleRecord), nil
}

// normalizeNumbers converts json.Number values to int64 when they are whole
// numbers that fit, and to float64 otherwise, so integers are stored as
// integers and are not rounded through float64.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	default:
		return val
	}
}
