package htmltext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_PrefersPreformattedBlock(t *testing.T) {
	report := strings.Repeat("06DEC2025 1500  553.43  362.10\n", 5)
	html := "<html><body><h1>Norfork Lake</h1><pre>" + report + "</pre></body></html>"

	got := Extract(html)

	assert.Equal(t, report, got)
	assert.NotContains(t, got, "Norfork Lake", "surrounding markup text must be excluded")
}

func TestExtract_ShortPreFallsBackToBody(t *testing.T) {
	html := "<html><body><pre>empty</pre><p>PROJECTED LOADING SCHEDULE</p></body></html>"

	got := Extract(html)

	assert.Contains(t, got, "PROJECTED LOADING SCHEDULE")
}

func TestExtract_PlainTextPassesThrough(t *testing.T) {
	raw := "06DEC2025 1500  553.43"

	got := Extract(raw)

	assert.Contains(t, got, "06DEC2025 1500  553.43")
}

func TestExtract_PreservesLineStructure(t *testing.T) {
	report := "HEADER LINE" + strings.Repeat("x", 100) + "\n06DEC2025 1500  553.43\n"
	html := "<html><body><pre>" + report + "</pre></body></html>"

	got := Extract(html)

	lines := strings.Split(got, "\n")
	assert.GreaterOrEqual(t, len(lines), 2, "pre block newlines must survive extraction")
}
