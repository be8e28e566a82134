// Package types provides type definitions for structured data used throughout the resume importer.
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultCollection is the document collection resume locales are written to.
const DefaultCollection = "resume"

// LocaleRecord is one language's resume content. No schema is enforced; it is
// passed to the document store as-is.
type LocaleRecord = map[string]any

// WriteMode selects how an upsert treats the existing remote document.
type WriteMode string

const (
	// WriteModeMerge keeps remote fields that are absent from the new payload.
	WriteModeMerge WriteMode = "merge"
	// WriteModeReplace discards the prior document and writes only the new payload.
	WriteModeReplace WriteMode = "replace"
)

func (m WriteMode) String() string {
	return string(m)
}

// IsMerge reports whether m is the merge mode.
func (m WriteMode) IsMerge() bool {
	return m == WriteModeMerge
}

// PastTense returns "merged" or "replaced" for operator-facing messages.
func (m WriteMode) PastTense() string {
	if m.IsMerge() {
		return "merged"
	}
	return "replaced"
}

// ParseWriteMode strictly parses a mode name given on the command line.
// Unlike the interactive prompt, unknown values are rejected.
func ParseWriteMode(s string) (WriteMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "merge":
		return WriteModeMerge, nil
	case "r", "replace":
		return WriteModeReplace, nil
	default:
		return "", fmt.Errorf("invalid write mode %q (want merge or replace)", s)
	}
}

// ImportTarget identifies one unit of work: a locale file and whether its
// failure aborts the run.
type ImportTarget struct {
	LocaleCode string `json:"locale_code" yaml:"locale_code" validate:"required,max=35,excludesall=/"`
	FilePath   string `json:"file_path" yaml:"file_path" validate:"required"`
	Required   bool   `json:"required" yaml:"required"`
}

// Validate validates the ImportTarget using the validator.
func (t *ImportTarget) Validate() error {
	validate := validator.New()
	return validate.Struct(t)
}

// DefaultTargets returns the built-in import targets: English is mandatory,
// French is optional.
func DefaultTargets() []ImportTarget {
	return []ImportTarget{
		{LocaleCode: "en", FilePath: "./assets/profile_en.json", Required: true},
		{LocaleCode: "fr", FilePath: "./assets/profile_fr.json", Required: false},
	}
}
