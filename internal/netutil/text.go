package netutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText collapses whitespace runs, including non-breaking spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// HTMLToText returns the readable text of an HTML fragment. Block elements
// are separated by a space so adjacent paragraphs do not run together.
// Input that fails to parse is returned cleaned but otherwise untouched.
func HTMLToText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return CleanText(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CleanText(fragment)
	}
	doc.Find("script,style,noscript").Remove()
	doc.Find("p,div,li,br,h1,h2,h3,h4,h5,h6,tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return CleanText(doc.Text())
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
