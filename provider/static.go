package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/domscope/domtree"
)

// Static analyses saved HTML: files, readers, raw strings. It understands
// two static stand-ins for the live tree-extension mechanisms: iframe
// srcdoc documents become content documents, and declarative shadow DOM
// templates become shadow roots.
type Static struct {
	logger *slog.Logger
}

// NewStatic creates a static HTML provider.
func NewStatic(logger *slog.Logger) *Static {
	if logger == nil {
		logger = slog.Default()
	}
	return &Static{logger: logger}
}

// Tree implements Provider. The target is a file path.
func (s *Static) Tree(ctx context.Context, target string) (*domtree.Node, error) {
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("provider: read %s: %w", target, err)
	}
	root, err := s.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("provider: static tree built", "target", target, "bytes", len(data))
	return root, nil
}

// Parse builds the snapshot tree from an HTML stream and assigns
// interactive element indexes.
func (s *Static) Parse(r io.Reader) (*domtree.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("provider: parse html: %w", err)
	}
	root := convertDocument(doc)
	if root == nil {
		return nil, ErrNoTree
	}
	AssignElementIndexes(root)
	return root, nil
}

// convertDocument maps a parsed html.Node tree to the snapshot model
// with an explicit stack. Recursion happens only across nested srcdoc
// documents, never with the DOM depth of a single document.
func convertDocument(doc *html.Node) *domtree.Node {
	root := makeStaticNode(doc)
	if root == nil {
		return nil
	}

	type item struct {
		src *html.Node
		dst *domtree.Node
	}
	stack := []item{{doc, root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for c := it.src.FirstChild; c != nil; c = c.NextSibling {
			if isShadowTemplate(c) {
				if sr := shadowRootOf(c); sr != nil {
					it.dst.ShadowRoots = append(it.dst.ShadowRoots, sr)
					stack = append(stack, item{c, sr})
				}
				continue
			}
			child := makeStaticNode(c)
			if child == nil {
				continue
			}
			it.dst.Children = append(it.dst.Children, child)
			stack = append(stack, item{c, child})
		}
	}
	return root
}

func makeStaticNode(n *html.Node) *domtree.Node {
	switch n.Type {
	case html.ElementNode:
		node := &domtree.Node{Type: domtree.Element, Name: n.Data}
		if len(n.Attr) > 0 {
			node.Attributes = make(map[string]string, len(n.Attr))
			for _, a := range n.Attr {
				node.Attributes[a.Key] = a.Val
			}
		}
		if n.DataAtom == atom.Iframe {
			if srcdoc, ok := node.Attr("srcdoc"); ok {
				if doc, err := html.Parse(strings.NewReader(srcdoc)); err == nil {
					node.ContentDocument = convertDocument(doc)
				}
			}
		}
		return node
	case html.TextNode:
		return &domtree.Node{Type: domtree.Text, Name: "#text", Value: n.Data}
	case html.DocumentNode:
		return &domtree.Node{Type: domtree.Other, Name: "#document"}
	default:
		// Comments and doctypes carry nothing the analysis reads.
		return nil
	}
}

// isShadowTemplate matches declarative shadow DOM hosts:
// <template shadowrootmode="open">.
func isShadowTemplate(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Template {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "shadowrootmode" || a.Key == "shadowroot" {
			return true
		}
	}
	return false
}

// shadowRootOf wraps a template's content in a synthetic subtree root.
func shadowRootOf(*html.Node) *domtree.Node {
	return &domtree.Node{Type: domtree.Other, Name: "#shadow-root"}
}
