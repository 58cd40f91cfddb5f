package shared

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripMarkup flattens the HTML fragments the catalog embeds in summaries
// into plain display text.
func StripMarkup(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(doc.Text())
}
