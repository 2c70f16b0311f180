package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Event names a user interaction dispatched to an element.
type Event string

const (
	EventClick      Event = "click"
	EventMouseEnter Event = "mouseenter"
	EventMouseLeave Event = "mouseleave"
)

// Listener is invoked with the element the event was dispatched to.
type Listener func(Element)

// Element is a live reference to a node of a Document.
type Element interface {
	ID() string
	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	HasClass(class string) bool
	AddClass(class string)
	RemoveClass(class string)
	Text() string
	SetText(text string)
	// QuerySelectorAll matches descendants of the element only.
	QuerySelectorAll(selector string) ([]Element, error)
}

// Document is the rendering surface the behaviour packages mutate.
type Document interface {
	ElementByID(id string) (Element, bool)
	QuerySelectorAll(selector string) ([]Element, error)
	On(id string, event Event, fn Listener) error
	Dispatch(id string, event Event) error
}

type listenerKey struct {
	id    string
	event Event
}

// MemoryDocument is a Document held in memory as an x/net/html node tree.
// It is safe for concurrent use.
type MemoryDocument struct {
	mu        sync.RWMutex
	root      *html.Node
	listeners map[listenerKey][]Listener
}

var _ Document = (*MemoryDocument)(nil)

// New returns an empty document with html, head and body elements.
func New() *MemoryDocument {
	doc, _ := ParseString("")
	return doc
}

// Parse reads a full HTML document. Fragments are accepted and placed in body.
func Parse(r io.Reader) (*MemoryDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &MemoryDocument{
		root:      root,
		listeners: make(map[listenerKey][]Listener),
	}, nil
}

func ParseString(s string) (*MemoryDocument, error) {
	return Parse(strings.NewReader(s))
}

// AppendHTML parses markup in the context of the element with parentID and
// appends the resulting nodes to it. An empty parentID targets body.
func (d *MemoryDocument) AppendHTML(parentID, markup string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var parent *html.Node
	if parentID == "" {
		parent = findFirst(d.root, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.DataAtom == atom.Body
		})
	} else {
		parent = d.byID(parentID)
	}
	if parent == nil {
		return fmt.Errorf("%w: %q", ErrElementNotFound, parentID)
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}

// Remove detaches the element with id from the tree and drops its listeners.
func (d *MemoryDocument) Remove(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.byID(id)
	if n == nil || n.Parent == nil {
		return false
	}
	n.Parent.RemoveChild(n)
	for key := range d.listeners {
		if key.id == id {
			delete(d.listeners, key)
		}
	}
	return true
}

func (d *MemoryDocument) ElementByID(id string) (Element, bool) {
	if id == "" {
		return nil, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	n := d.byID(id)
	if n == nil {
		return nil, false
	}
	return &element{doc: d, n: n}, true
}

func (d *MemoryDocument) QuerySelectorAll(selector string) ([]Element, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.collect(d.root, sel), nil
}

func (d *MemoryDocument) On(id string, event Event, fn Listener) error {
	if fn == nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.byID(id) == nil {
		return fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}
	key := listenerKey{id: id, event: event}
	d.listeners[key] = append(d.listeners[key], fn)
	return nil
}

func (d *MemoryDocument) Dispatch(id string, event Event) error {
	d.mu.RLock()
	n := d.byID(id)
	listeners := append([]Listener(nil), d.listeners[listenerKey{id: id, event: event}]...)
	d.mu.RUnlock()

	if n == nil {
		return fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}

	el := &element{doc: d, n: n}
	for _, fn := range listeners {
		fn(el)
	}
	return nil
}

// Render writes the whole document as HTML.
func (d *MemoryDocument) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return html.Render(w, d.root)
}

// OuterHTML renders the element with id and its descendants.
func (d *MemoryDocument) OuterHTML(id string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n := d.byID(id)
	if n == nil {
		return "", fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *MemoryDocument) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

func (d *MemoryDocument) byID(id string) *html.Node {
	return findFirst(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := getAttr(n, "id")
		return ok && v == id
	})
}

func (d *MemoryDocument) collect(scope *html.Node, sel cascadia.Matcher) []Element {
	nodes := query(scope, sel)
	out := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &element{doc: d, n: n})
	}
	return out
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}
