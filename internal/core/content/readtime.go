package content

import (
	"strings"

	"golang.org/x/net/html"
)

// WordsPerMinute is the assumed reading speed.
const WordsPerMinute = 200

// ReadTime estimates minutes to read text: whitespace-separated words divided
// by WordsPerMinute, rounded up, never less than 1.
func ReadTime(text string) int {
	words := len(strings.Fields(text))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// skipText lists elements whose text is never rendered.
var skipText = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// blockElements end a run of text, so adjacent blocks do not merge words.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true, "td": true, "th": true,
	"hr": true, "img": true, "figure": true, "figcaption": true, "section": true,
}

// PlainText returns the rendered text of an HTML fragment. Malformed markup is
// tolerated the way browsers tolerate it.
func PlainText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipText[n.Data] {
				return
			}
			if blockElements[n.Data] {
				sb.WriteByte(' ')
				defer sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}

// HTMLReadTime is ReadTime over the rendered text of an HTML fragment.
func HTMLReadTime(fragment string) int {
	return ReadTime(PlainText(fragment))
}
