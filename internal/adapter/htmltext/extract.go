// Package htmltext isolates the monospace report body from the HTML wrapper
// the sources serve it in.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Shorter preformatted content means the expected block is empty or the page
// structure changed; fall through to the whole document text instead.
const minPreformattedLength = 100

// Extract returns the text of the document's preformatted block when present
// and plausibly a report, falling back to the full visible text and finally
// to the raw input. It never fails; a garbage result is left for the report
// parsers to reject with a precise error.
func Extract(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	if pre := doc.Find("pre").Text(); len(pre) >= minPreformattedLength {
		return pre
	}

	if body := doc.Find("body").Text(); body != "" {
		return body
	}

	return raw
}
