// Package prompt resolves the run's write mode from a single operator answer.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-importer/internal/types"
)

// Question is shown once per run before any import happens.
const Question = "Do you want to MERGE (safe overwrite) or REPLACE (full overwrite)? (m/r): "

// Func asks the operator a question and blocks until one line of input is received.
type Func func(question string) (string, error)

// FromReader returns a Func that writes the question to out and reads a single
// line from in. Reaching EOF before a newline returns whatever was read.
func FromReader(in io.Reader, out io.Writer) Func {
	reader := bufio.NewReader(in)
	return func(question string) (string, error) {
		if _, err := fmt.Fprint(out, question); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return line, nil
	}
}

// ParseAnswer maps a raw answer to a write mode. Only "m" (case-insensitive,
// surrounding whitespace ignored) selects merge; anything else, including an
// empty answer or a typo, selects replace.
func ParseAnswer(answer string) types.WriteMode {
	if strings.ToLower(strings.TrimSpace(answer)) == "m" {
		return types.WriteModeMerge
	}
	return types.WriteModeReplace
}

// ResolveWriteMode asks Question exactly once and returns the resulting mode.
func ResolveWriteMode(ask Func) (types.WriteMode, error) {
	if ask == nil {
		return "", fmt.Errorf("prompt function is nil")
	}
	answer, err := ask(Question)
	if err != nil {
		return "", fmt.Errorf("failed to resolve write mode: %w", err)
	}
	return ParseAnswer(answer), nil
}
