package resolve

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// findLabel returns the innermost span of the #info block whose text contains
// label. Spans wrapping other elements are skipped so that the match is the
// label itself and not the row that contains it.
func findLabel(doc *goquery.Document, label string) *html.Node {
	if doc == nil || label == "" {
		return nil
	}
	var found *html.Node
	doc.Find("#info span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		if span.Children().Length() > 0 {
			return true
		}
		if strings.Contains(span.Text(), label) {
			found = span.Get(0)
			return false
		}
		return true
	})
	return found
}

// labelValue reads the value that follows a label: the first non-empty text
// run, or the text of the first element sibling when the text run is only
// the colon. A line break or the next label ends the search.
func labelValue(label *html.Node) string {
	if label == nil {
		return ""
	}
	for node := label.NextSibling; node != nil; node = node.NextSibling {
		switch node.Type {
		case html.TextNode:
			if value := trimColon(node.Data); value != "" {
				return value
			}
		case html.ElementNode:
			if node.Data == "br" || isLabel(node) {
				return ""
			}
			if value := strings.TrimSpace(nodeText(node)); value != "" {
				return value
			}
		}
	}
	return ""
}

// labelLinks collects the text of every link after a label up to the next
// non-empty span.
func labelLinks(label *html.Node) []string {
	if label == nil {
		return nil
	}
	var out []string
	for node := label.NextSibling; node != nil; node = node.NextSibling {
		if node.Type != html.ElementNode {
			continue
		}
		if node.Data == "span" && strings.TrimSpace(nodeText(node)) != "" {
			break
		}
		if node.Data == "a" {
			if text := strings.TrimSpace(nodeText(node)); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

// labelText concatenates the plain text after a label up to the next
// non-empty span. Line breaks separate entries.
func labelText(label *html.Node) string {
	if label == nil {
		return ""
	}
	var b strings.Builder
	for node := label.NextSibling; node != nil; node = node.NextSibling {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			continue
		}
		if node.Type != html.ElementNode {
			continue
		}
		if node.Data == "span" && strings.TrimSpace(nodeText(node)) != "" {
			break
		}
		if node.Data == "br" {
			b.WriteString("/")
		}
	}
	return trimColon(b.String())
}

func isLabel(node *html.Node) bool {
	if node.Data != "span" {
		return false
	}
	for _, attr := range node.Attr {
		if attr.Key == "class" && strings.Contains(" "+attr.Val+" ", " pl ") {
			return true
		}
	}
	return false
}

func trimColon(s string) string {
	s = strings.TrimLeft(strings.TrimSpace(s), ":：")
	return strings.TrimSpace(s)
}

// nodeText returns the concatenated text content of node.
func nodeText(node *html.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == html.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(nodeText(child))
	}
	return b.String()
}

// blockText renders node text keeping paragraph and line breaks as newlines.
func blockText(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "br":
				b.WriteString("\n")
				return
			case "script", "style":
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "li" || n.Data == "div") {
			b.WriteString("\n")
		}
	}
	if node != nil {
		walk(node)
	}
	return b.String()
}
