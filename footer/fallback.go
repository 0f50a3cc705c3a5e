package footer

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/footer/dom"
)

// Link is one entry of the fallback footer's link line.
type Link struct {
	Href  string `yaml:"href"`
	Label string `yaml:"label"`
}

// FallbackConfig parameterises the fallback footer. Zero fields take the
// defaults of DefaultFallback.
type FallbackConfig struct {
	Owner  string `yaml:"owner"`
	Rights string `yaml:"rights"`
	Style  string `yaml:"style"`
	Links  []Link `yaml:"links"`
}

// DefaultFallback returns the built-in fallback footer settings.
func DefaultFallback() FallbackConfig {
	return FallbackConfig{
		Owner:  "Ordo",
		Rights: "Tous droits réservés",
		Style:  "padding: 20px; text-align: center; border-top: 1px solid #000;",
		Links: []Link{
			{Href: "confidentialite.html", Label: "Politique de confidentialité"},
			{Href: "legal.html", Label: "Mentions légales"},
		},
	}
}

func (fc FallbackConfig) withDefaults() FallbackConfig {
	def := DefaultFallback()
	if fc.Owner == "" {
		fc.Owner = def.Owner
	}
	if fc.Rights == "" {
		fc.Rights = def.Rights
	}
	if fc.Style == "" {
		fc.Style = def.Style
	}
	if len(fc.Links) == 0 {
		fc.Links = def.Links
	}
	return fc
}

// BuildFallback constructs the fallback footer element node by node:
//
//	<footer style="...">
//	  <p>© YEAR Owner — Rights</p>
//	  <p><a href="...">...</a> | <a href="...">...</a></p>
//	</footer>
func BuildFallback(year int, fc FallbackConfig) *html.Node {
	fc = fc.withDefaults()

	footer := element(atom.Footer)
	dom.SetAttr(footer, "style", fc.Style)

	copyright := element(atom.P)
	copyright.AppendChild(text("© " + strconv.Itoa(year) + " " + fc.Owner + " — " + fc.Rights))
	footer.AppendChild(copyright)

	links := element(atom.P)
	for i, l := range fc.Links {
		if i > 0 {
			links.AppendChild(text(" | "))
		}
		a := element(atom.A)
		dom.SetAttr(a, "href", l.Href)
		a.AppendChild(text(l.Label))
		links.AppendChild(a)
	}
	footer.AppendChild(links)

	return footer
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
