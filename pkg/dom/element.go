package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

type element struct {
	doc *MemoryDocument
	n   *html.Node
}

func (e *element) ID() string {
	v, _ := e.Attr("id")
	return v
}

func (e *element) Tag() string {
	return e.n.Data
}

func (e *element) Attr(name string) (string, bool) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	return getAttr(e.n, strings.ToLower(name))
}

func (e *element) SetAttr(name, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	setAttr(e.n, strings.ToLower(name), value)
}

func (e *element) RemoveAttr(name string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	removeAttr(e.n, strings.ToLower(name))
}

func (e *element) HasClass(class string) bool {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	return hasClass(e.n, class)
}

func (e *element) AddClass(class string) {
	if class == "" {
		return
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	classes := classList(e.n)
	if slices.Contains(classes, class) {
		return
	}
	setAttr(e.n, "class", strings.Join(append(classes, class), " "))
}

func (e *element) RemoveClass(class string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	classes := classList(e.n)
	if !slices.Contains(classes, class) {
		return
	}
	classes = slices.DeleteFunc(classes, func(c string) bool { return c == class })
	if len(classes) == 0 {
		removeAttr(e.n, "class")
		return
	}
	setAttr(e.n, "class", strings.Join(classes, " "))
}

func (e *element) Text() string {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	var sb strings.Builder
	walk(e.n, func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
	})
	return sb.String()
}

// SetText replaces all children with a single text node.
func (e *element) SetText(text string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *element) QuerySelectorAll(selector string) ([]Element, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}

	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	return e.doc.collect(e.n, sel), nil
}

func classList(n *html.Node) []string {
	v, _ := getAttr(n, "class")
	return strings.Fields(v)
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(classList(n), class)
}
