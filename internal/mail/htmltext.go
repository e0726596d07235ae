package mail

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(`[ \t\f\r]+`)
	anySpace     = regexp.MustCompile(`\s+`)
)

// HTMLToText flattens an HTML mail body into readable plain text. Links
// keep their target in parentheses; scripts and styles are dropped.
func HTMLToText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return strings.TrimSpace(src)
	}
	var sb strings.Builder
	walkText(doc, &sb, 0)
	return cleanText(sb.String())
}

func walkText(n *html.Node, sb *strings.Builder, depth int) {
	if depth > 100 {
		return
	}

	switch n.Type {
	case html.TextNode:
		sb.WriteString(anySpace.ReplaceAllString(n.Data, " "))
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "head", "noscript", "svg":
			return
		case "br":
			sb.WriteString("\n")
		case "p", "div", "tr", "table", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6":
			sb.WriteString("\n\n")
		case "li":
			sb.WriteString("\n- ")
		case "img":
			if alt := attr(n, "alt"); alt != "" {
				sb.WriteString("[" + alt + "]")
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, sb, depth+1)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "a":
			href := attr(n, "href")
			if href != "" && !strings.HasPrefix(href, "#") && !strings.HasPrefix(href, "mailto:") {
				sb.WriteString(" (" + href + ")")
			}
		case "p", "div", "table", "blockquote":
			sb.WriteString("\n\n")
		case "td", "th":
			sb.WriteString(" ")
		}
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = multiSpace.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
