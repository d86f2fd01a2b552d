package dialog

import (
	"sync"

	"golang.org/x/net/html"

	"github.com/yumosx/loft/internal/dom"
)

const boxSelector = ".loft_dialog_box"

// Mount is the subtree dialogs are attached to. It owns the side table that
// maps chrome containers back to their dialogs, so dialogs of independent
// mounts never see each other in z-order scans.
type Mount struct {
	node    *html.Node
	mu      sync.Mutex
	dialogs map[*html.Node]*Dialog
}

// NewMount creates a registry for dialogs attached under node.
func NewMount(node *html.Node) *Mount {
	return &Mount{
		node:    node,
		dialogs: make(map[*html.Node]*Dialog),
	}
}

// Node returns the mount node.
func (m *Mount) Node() *html.Node {
	return m.node
}

func (m *Mount) attach(d *Dialog) {
	m.mu.Lock()
	m.dialogs[d.container] = d
	m.mu.Unlock()
	dom.Append(m.node, d.container)
}

func (m *Mount) detach(d *Dialog) {
	m.mu.Lock()
	delete(m.dialogs, d.container)
	m.mu.Unlock()
	dom.Detach(d.container)
}

// Dialogs returns the dialogs whose chrome is currently attached under the
// mount node, in document order. The tree is scanned on every call.
func (m *Mount) Dialogs() []*Dialog {
	nodes := dom.Find(m.node, boxSelector)
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Dialog, 0, len(nodes))
	for _, n := range nodes {
		if d, ok := m.dialogs[n]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Owner returns the dialog whose chrome contains n.
func (m *Mount) Owner(n *html.Node) (*Dialog, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ; n != nil; n = n.Parent {
		if d, ok := m.dialogs[n]; ok {
			return d, true
		}
	}
	return nil, false
}

// maxZIndex returns the highest z-index among the dialogs of the mount,
// open or not, leaving out skip.
func (m *Mount) maxZIndex(skip *Dialog) (int, bool) {
	var (
		maxZ  int
		found bool
	)
	for _, d := range m.Dialogs() {
		if d == skip {
			continue
		}
		if z, ok := d.zIndex(); ok && (!found || z > maxZ) {
			maxZ, found = z, true
		}
	}
	return maxZ, found
}

// Top returns the open dialog with the highest z-index, if any.
func (m *Mount) Top() (*Dialog, bool) {
	var (
		top  *Dialog
		maxZ int
	)
	for _, d := range m.Dialogs() {
		z, ok := d.zIndex()
		if d.IsOpened() && ok && (top == nil || z >= maxZ) {
			top, maxZ = d, z
		}
	}
	return top, top != nil
}

// Default document size in cells.
const (
	DefaultWindowWidth  = 120
	DefaultWindowHeight = 40
)

var (
	defaultOnce  sync.Once
	defaultDoc   *dom.Document
	defaultMount *Mount
)

func defaults() (*dom.Document, *Mount) {
	defaultOnce.Do(func() {
		defaultDoc = dom.NewDocument(DefaultWindowWidth, DefaultWindowHeight)
		defaultMount = NewMount(defaultDoc.Body)
	})
	return defaultDoc, defaultMount
}

// DefaultDocument returns the process wide document hostless dialogs use
// when no mount is given.
func DefaultDocument() *dom.Document {
	doc, _ := defaults()
	return doc
}

// DefaultMount returns the mount on the body of DefaultDocument.
func DefaultMount() *Mount {
	_, m := defaults()
	return m
}
