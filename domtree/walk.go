package domtree

import "errors"

// Unlimited disables the depth bound.
const Unlimited = -1

// ErrEmptyTree is returned by Walk when the root is nil. An absent tree
// is a normal outcome, not a traversal fault; callers distinguish it
// with errors.Is.
var ErrEmptyTree = errors.New("domtree: empty tree")

// SkipChildren may be returned by a VisitFunc on an EnterNode event to
// suppress descent into the node's edges. The element's LeaveElement
// event still fires.
var SkipChildren = errors.New("domtree: skip children")

// EventKind identifies what a traversal event describes.
type EventKind int

const (
	// EnterNode is the pre-order visit of a node.
	EnterNode EventKind = iota
	// LeaveElement fires after all descendants of an element have been
	// walked, including its content document and shadow roots.
	LeaveElement
	// EnterContentDocument fires immediately before the root of a
	// nested content document is entered. Node is that root.
	EnterContentDocument
	// EnterShadowRoot fires immediately before a shadow root subtree is
	// entered. Node is the shadow root.
	EnterShadowRoot
	// DepthLimit fires once per node whose edges were suppressed by the
	// depth bound. Node is the truncated node; Depth is the depth the
	// suppressed children would have had.
	DepthLimit
)

// Event is one traversal observation.
//
// Depth is the logical depth: the root is 0 and every edge kind adds 1.
// Sections counts the content-document and shadow-root boundaries
// crossed between the root and the node; renderers indent by
// Depth+Sections so nested documents are visually offset one extra
// level, the way the boundary marker lines expect.
type Event struct {
	Kind     EventKind
	Node     *Node
	Depth    int
	Sections int
}

// VisitFunc observes traversal events. Returning SkipChildren on an
// EnterNode event prunes that node's subtree; any other non-nil error
// aborts the walk and is returned from Walk.
type VisitFunc func(Event) error

// WalkOptions bound a traversal.
type WalkOptions struct {
	// MaxDepth is the greatest depth at which nodes are still visited.
	// Unlimited (-1) walks the whole tree. 0 visits only the root.
	MaxDepth int

	// CycleGuard tracks visited nodes and silently skips revisits.
	// The tree contract says the graph is acyclic, so the guard is off
	// by default; enable it when the provider is not trusted to uphold
	// that contract.
	CycleGuard bool
}

type walkOp int

const (
	opEnter walkOp = iota
	opLeave
	opContentDoc
	opShadow
	opLimit
)

type frame struct {
	op       walkOp
	node     *Node
	depth    int
	sections int
}

// Walk traverses the logical tree rooted at root in deterministic
// pre-order: node, then children in order, then the content document as
// one extra child after all ordinary children, then each shadow root in
// order. Text nodes are never recursed into. The traversal uses an
// explicit stack, so adversarially deep input cannot exhaust the
// goroutine stack.
func Walk(root *Node, opts WalkOptions, fn VisitFunc) error {
	if root == nil {
		return ErrEmptyTree
	}

	var seen map[*Node]struct{}
	if opts.CycleGuard {
		seen = make(map[*Node]struct{})
	}

	stack := []frame{{op: opEnter, node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch f.op {
		case opLeave:
			if err := fn(Event{Kind: LeaveElement, Node: f.node, Depth: f.depth, Sections: f.sections}); err != nil && !errors.Is(err, SkipChildren) {
				return err
			}
			continue
		case opLimit:
			if err := fn(Event{Kind: DepthLimit, Node: f.node, Depth: f.depth, Sections: f.sections}); err != nil && !errors.Is(err, SkipChildren) {
				return err
			}
			continue
		case opContentDoc:
			if err := fn(Event{Kind: EnterContentDocument, Node: f.node, Depth: f.depth, Sections: f.sections}); err != nil {
				if errors.Is(err, SkipChildren) {
					continue
				}
				return err
			}
			stack = append(stack, frame{op: opEnter, node: f.node, depth: f.depth, sections: f.sections + 1})
			continue
		case opShadow:
			if err := fn(Event{Kind: EnterShadowRoot, Node: f.node, Depth: f.depth, Sections: f.sections}); err != nil {
				if errors.Is(err, SkipChildren) {
					continue
				}
				return err
			}
			stack = append(stack, frame{op: opEnter, node: f.node, depth: f.depth, sections: f.sections + 1})
			continue
		}

		n := f.node
		if seen != nil {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
		}

		skip := false
		if err := fn(Event{Kind: EnterNode, Node: n, Depth: f.depth, Sections: f.sections}); err != nil {
			if !errors.Is(err, SkipChildren) {
				return err
			}
			skip = true
		}

		if n.Type == Text {
			continue
		}

		// The leave frame goes on first so it fires after everything
		// pushed below it.
		if n.Type == Element {
			stack = append(stack, frame{op: opLeave, node: n, depth: f.depth, sections: f.sections})
		}
		if skip || !hasEdges(n) {
			continue
		}

		childDepth := f.depth + 1
		if opts.MaxDepth != Unlimited && childDepth > opts.MaxDepth {
			stack = append(stack, frame{op: opLimit, node: n, depth: childDepth, sections: f.sections})
			continue
		}

		// LIFO stack: push shadow roots, then the content document,
		// then children, each group reversed, so pop order is children,
		// content document, shadow roots.
		for i := len(n.ShadowRoots) - 1; i >= 0; i-- {
			if sr := n.ShadowRoots[i]; sr != nil {
				stack = append(stack, frame{op: opShadow, node: sr, depth: childDepth, sections: f.sections})
			}
		}
		if n.ContentDocument != nil {
			stack = append(stack, frame{op: opContentDoc, node: n.ContentDocument, depth: childDepth, sections: f.sections})
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			if c := n.Children[i]; c != nil {
				stack = append(stack, frame{op: opEnter, node: c, depth: childDepth, sections: f.sections})
			}
		}
	}
	return nil
}

func hasEdges(n *Node) bool {
	return len(n.Children) > 0 || n.ContentDocument != nil || len(n.ShadowRoots) > 0
}
