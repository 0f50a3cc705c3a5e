package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup the way assigning innerHTML to a detached div
// does: the returned div holds the parsed nodes and belongs to no document.
// A full page is accepted too; its html, head and body tags are dropped and
// their children kept.
func ParseFragment(r io.Reader) (*html.Node, error) {
	return parseInto(r, &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
}

// ParseFragmentString is ParseFragment over a string.
func ParseFragmentString(s string) (*html.Node, error) {
	return ParseFragment(strings.NewReader(s))
}

// SetInnerHTML replaces the children of n with the parsed markup, using n
// as the parsing context.
func SetInnerHTML(n *html.Node, markup string) error {
	holder := &html.Node{Type: html.ElementNode, Data: n.Data, DataAtom: n.DataAtom}
	parsed, err := parseInto(strings.NewReader(markup), holder)
	if err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for c := parsed.FirstChild; c != nil; c = parsed.FirstChild {
		parsed.RemoveChild(c)
		n.AppendChild(c)
	}
	return nil
}

func parseInto(r io.Reader, container *html.Node) (*html.Node, error) {
	nodes, err := html.ParseFragment(r, &html.Node{
		Type:     html.ElementNode,
		Data:     container.Data,
		DataAtom: container.DataAtom,
	})
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// RenderNode renders a single node and its subtree.
func RenderNode(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
