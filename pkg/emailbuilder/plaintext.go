package emailbuilder

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText derives the text/plain alternative of an exported email.
// Links keep their target in parentheses and images become their alt text.
func PlainText(source string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return "", fmt.Errorf("failed to parse email HTML: %w", err)
	}

	doc.Find("head, style, script").Remove()
	// hidden preheader
	doc.Find(`div[style*="display:none"]`).Remove()
	doc.Find("br").ReplaceWithHtml("\n")

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		alt := strings.TrimSpace(s.AttrOr("alt", ""))
		if alt == "" {
			s.Remove()
			return
		}
		s.ReplaceWithHtml(html.EscapeString("[" + alt + "]"))
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || href == "#" || strings.TrimSpace(s.Text()) == href {
			return
		}
		s.AppendHtml(html.EscapeString(" (" + href + ")"))
	})
	doc.Find("h1, h2, h3, p, li, td, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	var lines []string
	for _, line := range strings.Split(doc.Find("body").Text(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
