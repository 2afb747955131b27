package analyze

import "github.com/hazyhaar/domscope/domtree"

// test fixture helpers shared by the analyze tests

func el(name string, kids ...*domtree.Node) *domtree.Node {
	return &domtree.Node{Type: domtree.Element, Name: name, Children: kids}
}

func txt(v string) *domtree.Node {
	return &domtree.Node{Type: domtree.Text, Name: "#text", Value: v}
}

func indexed(n *domtree.Node, idx int) *domtree.Node {
	n.ElementIndex = &idx
	return n
}

func attrs(n *domtree.Node, kv ...string) *domtree.Node {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attributes[kv[i]] = kv[i+1]
	}
	return n
}

func visible(n *domtree.Node) *domtree.Node {
	v := true
	n.IsVisible = &v
	return n
}
