// Package extract normalises a fetched judgment page into numbered
// paragraphs, preserving the bracketed paragraph markers that pinpoint
// citations refer to.
package extract

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Paragraph is one normalised judgment paragraph. Number is the bracketed
// marker as written ("12" for "[12]"), empty for unnumbered text such as
// headnotes.
type Paragraph struct {
	Number string
	Text   string
}

var paraMarkerRe = regexp.MustCompile(`^\[(\d+)\]\s*`)

// Paragraphs parses judgment HTML and returns its paragraphs in document
// order. Block elements become candidate paragraphs; obvious boilerplate
// (nav, header, footer, script, style) is skipped. Consecutive unnumbered
// fragments following a numbered paragraph are folded into it, since
// AustLII-style markup often splits one paragraph across elements.
func Paragraphs(page []byte) []Paragraph {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil
	}
	var blocks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "header", "footer", "aside", "form":
				return
			case "p", "li", "blockquote", "h1", "h2", "h3", "h4", "td":
				if text := collapseSpace(textOf(n)); text != "" {
					blocks = append(blocks, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var out []Paragraph
	for _, block := range blocks {
		if m := paraMarkerRe.FindStringSubmatch(block); m != nil {
			out = append(out, Paragraph{Number: m[1], Text: block})
			continue
		}
		if len(out) > 0 && out[len(out)-1].Number != "" {
			last := &out[len(out)-1]
			last.Text = last.Text + " " + block
			continue
		}
		out = append(out, Paragraph{Text: block})
	}
	return out
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
