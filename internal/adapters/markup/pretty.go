package markup

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const indentUnit = "  "

var blockElements = map[atom.Atom]bool{
	atom.Html: true, atom.Head: true, atom.Body: true, atom.Title: true,
	atom.Meta: true, atom.Link: true, atom.Script: true, atom.Style: true,
	atom.Div: true, atom.P: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Nav: true, atom.Main: true,
	atom.Aside: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Ul: true,
	atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dt: true,
	atom.Dd: true, atom.Table: true, atom.Thead: true, atom.Tbody: true,
	atom.Tfoot: true, atom.Tr: true, atom.Th: true, atom.Td: true,
	atom.Form: true, atom.Fieldset: true, atom.Figure: true, atom.Blockquote: true,
	atom.Pre: true, atom.Hr: true, atom.Textarea: true, atom.Noscript: true,
	atom.Template: true, atom.Picture: true, atom.Video: true, atom.Audio: true,
}

// rawElements keep their content byte for byte.
var rawElements = map[atom.Atom]bool{
	atom.Pre: true, atom.Textarea: true, atom.Script: true, atom.Style: true,
}

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// Pretty re-indents an HTML document: one block element per line, two spaces
// per nesting level. Elements holding only inline content stay on one line.
func Pretty(doc []byte) ([]byte, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}

	p := &printer{}
	for c := range root.ChildNodes() {
		if err := p.node(c, 0); err != nil {
			return nil, err
		}
	}
	return p.buf.Bytes(), nil
}

type printer struct {
	buf bytes.Buffer
}

func (p *printer) node(n *html.Node, depth int) error {
	switch n.Type {
	case html.DoctypeNode:
		p.line(depth, "<!DOCTYPE "+n.Data+">")
	case html.CommentNode:
		p.line(depth, "<!--"+n.Data+"-->")
	case html.TextNode:
		if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
			p.line(depth, html.EscapeString(text))
		}
	case html.ElementNode:
		return p.element(n, depth)
	}
	return nil
}

func (p *printer) element(n *html.Node, depth int) error {
	if voidElements[n.DataAtom] {
		p.line(depth, openTag(n))
		return nil
	}

	if rawElements[n.DataAtom] || inlineOnly(n) {
		var b strings.Builder
		if err := html.Render(&b, n); err != nil {
			return err
		}
		p.line(depth, collapseInline(n, b.String()))
		return nil
	}

	p.line(depth, openTag(n))
	for c := range n.ChildNodes() {
		if err := p.node(c, depth+1); err != nil {
			return err
		}
	}
	p.line(depth, "</"+n.Data+">")
	return nil
}

func (p *printer) line(depth int, s string) {
	p.buf.WriteString(strings.Repeat(indentUnit, depth))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

// inlineOnly reports whether n has no block descendants.
func inlineOnly(n *html.Node) bool {
	for c := range n.Descendants() {
		if c.Type == html.ElementNode && blockElements[c.DataAtom] {
			return false
		}
	}
	return true
}

// collapseInline joins the lines of a rendered inline element.
func collapseInline(n *html.Node, rendered string) string {
	if rawElements[n.DataAtom] {
		return rendered
	}
	return strings.Join(strings.Fields(rendered), " ")
}

func openTag(n *html.Node) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace)
			b.WriteByte(':')
		}
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}
