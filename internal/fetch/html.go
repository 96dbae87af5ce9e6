package fetch

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var multiWhitespace = regexp.MustCompile(`[ \t]+`)

// HTMLToText converts an HTML body fragment to plain text. The listing API
// returns these fields entity-encoded, so the fragment is unescaped before
// parsing. Falls back to a plain entity unescape when the fragment does not
// parse.
func HTMLToText(fragment string) string {
	decoded := html.UnescapeString(fragment)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decoded))
	if err != nil {
		return cleanWhitespace(decoded)
	}

	doc.Find("script, style").Remove()
	return cleanWhitespace(doc.Text())
}

// cleanWhitespace collapses runs of spaces and blank lines while keeping
// paragraph breaks.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(multiWhitespace.ReplaceAllString(line, " "))
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
