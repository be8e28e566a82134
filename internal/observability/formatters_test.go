package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-importer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintImported(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintImported("en", types.WriteModeMerge, "./assets/profile_en.json")
	p.PrintImported("fr", types.WriteModeReplace, "./assets/profile_fr.json")

	assert.Equal(t,
		"✅ Imported en (merged) from ./assets/profile_en.json\n"+
			"✅ Imported fr (replaced) from ./assets/profile_fr.json\n",
		buf.String())
}

func TestPrintSkipped_UsesWarnOutput(t *testing.T) {
	var out, warn bytes.Buffer
	p := NewPrinter(&out)
	p.SetWarnOutput(&warn)

	p.PrintSkipped("fr", "file not found")

	assert.Empty(t, out.String())
	assert.Equal(t, "⚠️ Skipping fr import (file not found).\n", warn.String())
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary("run-1", types.WriteModeReplace, 1, 1)

	assert.Contains(t, buf.String(), "run-1")
	assert.Contains(t, buf.String(), "1 imported, 1 skipped")
	assert.Contains(t, buf.String(), "replace")
}

func TestPrintTargets(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTargets("resume", types.DefaultTargets())
	output := buf.String()

	assert.Contains(t, output, "IMPORT TARGETS")
	assert.Contains(t, output, "Collection: resume")
	assert.Contains(t, output, "en  ./assets/profile_en.json  (required)")
	assert.Contains(t, output, "fr  ./assets/profile_fr.json  (optional)")
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := map[string]any{
		"name":       "Ada",
		"experience": []any{map[string]any{"company": "Analytical Engines"}},
		"contact":    map[string]any{"email": "ada@example.com"},
		"years":      float64(12),
		"remote":     true,
		"fax":        nil,
	}

	err := p.PrintDocument("resume", "en", doc)
	require.NoError(t, err)
	output := buf.String()

	assert.Contains(t, output, "DOCUMENT resume/en")
	assert.Contains(t, output, "Fields: 6")
	assert.Contains(t, output, "contact (object, 1 fields)")
	assert.Contains(t, output, "experience (array, 1 items)")
	assert.Contains(t, output, "fax (null)")
	assert.Contains(t, output, "years (number)")
	assert.Contains(t, output, `"email": "ada@example.com"`)
}

func TestPrintDocument_TruncatesFieldList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := map[string]any{}
	for _, k := range strings.Split("a b c d e f g h i j", " ") {
		doc[k] = k
	}

	require.NoError(t, p.PrintDocument("resume", "en", doc))
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintBox_MultibyteLinesStayAligned(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	longPath := "./assets/x" + strings.Repeat("é", 30)
	p.PrintTargets("résumé", []types.ImportTarget{{LocaleCode: "fr", FilePath: longPath}})
	output := buf.String()

	assert.True(t, utf8.ValidString(output))
	assert.Contains(t, output, "...")

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestFitLine(t *testing.T) {
	assert.Equal(t, "ab  ", fitLine("ab", 4))
	assert.Equal(t, "éé  ", fitLine("éé", 4))
	assert.Equal(t, "éé...", fitLine("éééééé", 5))
}

func TestSetWarnOutput_ColorFollowsWarnWriter(t *testing.T) {
	var out, warn bytes.Buffer
	p := NewPrinter(&out)
	p.colorEnabled = true
	p.warnColor = true

	p.SetWarnOutput(&warn)
	p.PrintSkipped("fr", "file not found")

	assert.False(t, p.warnColor)
	assert.Equal(t, "⚠️ Skipping fr import (file not found).\n", warn.String())
	assert.NotContains(t, warn.String(), "\x1b[")
}
