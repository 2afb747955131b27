// Package domtree defines the read-only DOM snapshot tree model and the
// traversal primitive shared by every analysis pass.
//
// A tree is produced by a provider (live Chrome, static HTML) and handed
// to the analysis passes, which never mutate it. A node reaches its
// descendants through three distinct edge kinds, always enumerated in the
// same order: ordinary children, the content document of a frame-hosting
// element, and shadow roots. Depth increases by one across every edge
// kind.
package domtree

import "strings"

// NodeType is a closed classification. Anything that is neither an
// element nor a text node (documents, fragments, comments) is Other:
// it emits nothing itself but its children are still walked.
type NodeType int

const (
	Element NodeType = iota
	Text
	Other
)

func (t NodeType) String() string {
	switch t {
	case Element:
		return "element"
	case Text:
		return "text"
	default:
		return "other"
	}
}

// Rect is an absolute page-coordinate rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AXProperty is one accessibility property. Value is nil when the
// property was reported without a usable value.
type AXProperty struct {
	Name  string `json:"name"`
	Value any    `json:"value,omitempty"`
}

// AXNode carries the accessibility record of an element.
type AXNode struct {
	Role       string       `json:"role,omitempty"`
	Name       string       `json:"name,omitempty"`
	Properties []AXProperty `json:"properties,omitempty"`
}

// SnapshotNode carries rendering-snapshot metadata captured at fetch time.
type SnapshotNode struct {
	IsClickable bool   `json:"is_clickable,omitempty"`
	CursorStyle string `json:"cursor_style,omitempty"`
}

// Node is one node of a DOM snapshot. All optional fields may be absent;
// analysis passes tolerate missing data by skipping the corresponding
// output rather than failing.
type Node struct {
	Type  NodeType `json:"type"`
	Name  string   `json:"name"`            // tag name for elements; compare via Tag
	Value string   `json:"value,omitempty"` // text payload for text nodes

	Attributes map[string]string `json:"attributes,omitempty"`

	Children        []*Node `json:"children,omitempty"`
	ContentDocument *Node   `json:"content_document,omitempty"`
	ShadowRoots     []*Node `json:"shadow_roots,omitempty"`

	// ElementIndex marks the node as an addressable interactive element.
	// Uniqueness across the tree is the provider's responsibility.
	ElementIndex *int `json:"element_index,omitempty"`

	IsVisible        *bool         `json:"is_visible,omitempty"`
	IsScrollable     *bool         `json:"is_scrollable,omitempty"`
	AbsolutePosition *Rect         `json:"absolute_position,omitempty"`
	AXNode           *AXNode       `json:"ax_node,omitempty"`
	SnapshotNode     *SnapshotNode `json:"snapshot_node,omitempty"`
}

// Tag returns the lowercased tag name. Tag comparisons are always
// case-insensitive; this is the canonical form.
func (n *Node) Tag() string {
	return strings.ToLower(n.Name)
}

// Attr looks up an attribute by name.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attributes[key]
	return v, ok
}

// Interactive reports whether the node carries an element index.
func (n *Node) Interactive() bool {
	return n.Type == Element && n.ElementIndex != nil
}
