// Package extract turns documentation pages into plain text, Markdown and link lists.
package extract

import (
	"io"
	"net/url"
	"strings"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/mackee/go-readability"
	"golang.org/x/net/html"
)

// contentSelectors are tried in order; the first one present on the page wins.
var contentSelectors = []string{
	"main",
	"article",
	"div.content",
}

// ancillarySelector matches nodes that never contribute to extracted text
const ancillarySelector = "script, style, nav, header, footer"

// Text extracts the readable text of an HTML page.
// The most specific content container is used (main, then article, then
// div.content) and the whole document otherwise. Each non-blank text node
// becomes one trimmed line.
func Text(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	container := doc.Selection
	for _, sel := range contentSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			container = found
			break
		}
	}
	container.Find(ancillarySelector).Remove()

	var lines []string
	for _, n := range container.Nodes {
		lines = appendText(lines, n)
	}
	return strings.Join(lines, "\n"), nil
}

func appendText(lines []string, n *html.Node) []string {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			lines = append(lines, s)
		}
		return lines
	case html.CommentNode, html.DoctypeNode:
		return lines
	case html.ElementNode:
		// ancillary nodes outside the chosen container, e.g. in <head>
		switch n.Data {
		case "script", "style", "noscript", "template":
			return lines
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		lines = appendText(lines, c)
	}
	return lines
}

// Markdown converts an HTML page into Markdown.
// readability is tried first to isolate the article; html-to-markdown converts
// the whole page when readability finds nothing.
func Markdown(pageURL *url.URL, body string) (string, error) {
	article, err := readability.Extract(body, readability.DefaultOptions())
	if err != nil {
		return "", err
	}

	if article.Root != nil {
		return readability.ToMarkdown(article.Root), nil
	}

	converter := html2md.NewConverter(pageURL.Host, true, &html2md.Options{})
	md, err := converter.ConvertString(body)
	if err != nil {
		return "", err
	}
	return md, nil
}

// Link is a hyperlink found on a page
type Link struct {
	// Href is the raw href attribute
	Href string
	// Label is the visible text with whitespace collapsed
	Label string
}

// Links returns every <a href> of an HTML page in document order.
func Links(r io.Reader) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		links = append(links, Link{
			Href:  href,
			Label: strings.Join(strings.Fields(s.Text()), " "),
		})
	})
	return links, nil
}
