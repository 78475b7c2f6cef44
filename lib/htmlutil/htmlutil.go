package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanInline collapses an element's text the way a browser renders
// inline content: non-printable runes dropped, surrounding whitespace
// trimmed, inner whitespace runs collapsed to one space.
func CleanInline(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// FindByExactText returns the first element under root matching
// selector whose trimmed text equals text, or nil. Landmark lookups in
// statement pages use this; a nil result means the landmark is absent.
func FindByExactText(root *goquery.Selection, selector, text string) *goquery.Selection {
	var found *goquery.Selection
	root.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) == text {
			found = sel
			return false
		}
		return true
	})
	return found
}

// PreText extracts the text of a <pre> block, preserving the line
// breaks produced by <br> tags and by line-wrapper <div>s, which plain
// goquery Text() would drop.
func PreText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		preText(n, &b)
	}
	return b.String()
}

func preText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type == html.ElementNode && n.Data == "br" {
		b.WriteString("\n")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		preText(c, b)
	}
	if n.Type == html.ElementNode && n.Data == "div" {
		b.WriteString("\n")
	}
}
