// CLAUDE:SUMMARY Document model over x/net/html: page parsing, body/head mount points, rendering.
// Package dom wraps golang.org/x/net/html trees with the few operations the
// footer loader needs: locating body and head, appending to them, parsing a
// fragment into a detached container and rendering the result.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Mount is where footer content is inserted. AppendBody receives the footer
// element, AppendHead the optional style element.
type Mount interface {
	AppendBody(n *html.Node)
	AppendHead(n *html.Node)
}

// Mounts is a Mount over arbitrary containers. A nil Head sends styles to
// Body.
type Mounts struct {
	Body *html.Node
	Head *html.Node
}

// AppendBody appends n as the last child of m.Body.
func (m Mounts) AppendBody(n *html.Node) {
	Detach(n)
	m.Body.AppendChild(n)
}

// AppendHead appends n as the last child of m.Head, or of m.Body when no
// head was given.
func (m Mounts) AppendHead(n *html.Node) {
	Detach(n)
	if m.Head == nil {
		m.Body.AppendChild(n)
		return
	}
	m.Head.AppendChild(n)
}

// Document is a parsed HTML page. The parser always synthesises html, head
// and body elements, so Body and Head are never nil.
type Document struct {
	Root *html.Node
	body *html.Node
	head *html.Node
}

// Parse reads a full HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return fromRoot(root)
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// New returns an empty document with bare html, head and body elements.
func New() *Document {
	doc, err := ParseString("")
	if err != nil {
		// Parsing an empty string cannot fail.
		panic(err)
	}
	return doc
}

func fromRoot(root *html.Node) (*Document, error) {
	d := &Document{
		Root: root,
		body: firstByAtom(root, atom.Body),
		head: firstByAtom(root, atom.Head),
	}
	if d.body == nil || d.head == nil {
		return nil, fmt.Errorf("dom: document has no body or head")
	}
	return d, nil
}

// Body returns the body element.
func (d *Document) Body() *html.Node { return d.body }

// Head returns the head element.
func (d *Document) Head() *html.Node { return d.head }

// AppendBody appends n as the last child of the body.
func (d *Document) AppendBody(n *html.Node) {
	Detach(n)
	d.body.AppendChild(n)
}

// AppendHead appends n as the last child of the head.
func (d *Document) AppendHead(n *html.Node) {
	Detach(n)
	d.head.AppendChild(n)
}

// Render writes the document, doctype included when present.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.Root)
}

// String renders the document, returning "" on render failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func firstByAtom(root *html.Node, a atom.Atom) *html.Node {
	if root.Type == html.ElementNode && root.DataAtom == a {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := firstByAtom(c, a); n != nil {
			return n
		}
	}
	return nil
}
