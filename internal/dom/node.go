// Package dom is the small document model dialogs are built on. Nodes are
// golang.org/x/net/html nodes so content can be parsed from markup, queried
// with goquery and rendered back to HTML.
package dom

import (
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Build turns markup into a single node. Plain text becomes a text node,
// markup with exactly one top-level node returns that node and anything else
// is wrapped in a div.
func Build(markup string) *html.Node {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil || len(nodes) == 0 {
		return Text(markup)
	}
	if len(nodes) == 1 {
		return nodes[0]
	}
	div := Element("div")
	for _, n := range nodes {
		div.AppendChild(n)
	}
	return div
}

// Text creates a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Element creates an empty element with the given tag name.
func Element(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Append moves child under parent, detaching it first when it lives
// elsewhere.
func Append(parent, child *html.Node) {
	Detach(child)
	parent.AppendChild(child)
}

// Children returns the direct children of n in order.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Contains reports whether n is root or one of its descendants.
func Contains(root, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// Attr returns the value of an attribute.
func Attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func SetAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute.
func RemoveAttr(n *html.Node, name string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Key == name
	})
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n carries class.
func HasClass(n *html.Node, class string) bool {
	if n == nil {
		return false
	}
	return slices.Contains(Classes(n), class)
}

// AddClass adds class to n.
func AddClass(n *html.Node, class string) {
	ToggleClass(n, class, true)
}

// RemoveClass removes class from n.
func RemoveClass(n *html.Node, class string) {
	ToggleClass(n, class, false)
}

// ToggleClass adds or removes class depending on on.
func ToggleClass(n *html.Node, class string, on bool) {
	if n == nil || n.Type != html.ElementNode {
		return
	}
	list := Classes(n)
	has := slices.Contains(list, class)
	switch {
	case on && !has:
		list = append(list, class)
	case !on && has:
		list = slices.DeleteFunc(list, func(c string) bool { return c == class })
	default:
		return
	}
	SetAttr(n, "class", strings.Join(list, " "))
}

// Style returns an inline style property.
func Style(n *html.Node, prop string) (string, bool) {
	v, _ := Attr(n, "style")
	for decl := range strings.SplitSeq(v, ";") {
		k, val, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == prop {
			return strings.TrimSpace(val), true
		}
	}
	return "", false
}

// SetStyle sets an inline style property, keeping the others in order.
func SetStyle(n *html.Node, prop, value string) {
	v, _ := Attr(n, "style")
	var decls []string
	found := false
	for decl := range strings.SplitSeq(v, ";") {
		k, _, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(k) == prop {
			decls = append(decls, prop+":"+value)
			found = true
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if !found {
		decls = append(decls, prop+":"+value)
	}
	SetAttr(n, "style", strings.Join(decls, ";"))
}

// StyleInt parses a numeric inline style property such as "12" or "12px".
func StyleInt(n *html.Node, prop string) (int, bool) {
	v, ok := Style(n, prop)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSuffix(v, "px"))
	if err != nil {
		return 0, false
	}
	return i, true
}

// Find returns the descendants of root matching a CSS selector, in document
// order.
func Find(root *html.Node, selector string) []*html.Node {
	if root == nil {
		return nil
	}
	return goquery.NewDocumentFromNode(root).Find(selector).Nodes
}

// First returns the first descendant of root matching selector, or nil.
func First(root *html.Node, selector string) *html.Node {
	nodes := Find(root, selector)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	return goquery.NewDocumentFromNode(n).Text()
}

// OuterHTML renders n back to markup.
func OuterHTML(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return sb.String()
		}
	}
	return sb.String()
}

// Value returns the value of an input-like element.
func Value(n *html.Node) string {
	v, _ := Attr(n, "value")
	return v
}

// SetValue sets the value of an input-like element.
func SetValue(n *html.Node, v string) {
	SetAttr(n, "value", v)
}

// IsInputLike reports whether n is a form control that owns focus and text
// selection.
func IsInputLike(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Input, atom.Select, atom.Textarea:
		return true
	}
	return false
}
