package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/taintflow/analyzer/flow"
)

// sourceSlice returns the exact source text spanned by node.
func sourceSlice(node *sitter.Node, code []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(code) || start > end {
		return ""
	}
	return string(code[start:end])
}

// containsIdentifier reports whether the subtree of node, node included, holds an
// identifier whose text equals name.
func containsIdentifier(node *sitter.Node, name string, code []byte, isIdentifier func(kind string) bool) bool {
	if node == nil {
		return false
	}
	if isIdentifier(node.Type()) && sourceSlice(node, code) == name {
		return true
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if containsIdentifier(node.NamedChild(i), name, code, isIdentifier) {
			return true
		}
	}
	return false
}

// collectNodesOfKind returns the pre-order list of nodes in the subtree of node,
// node included, whose kind is one of kinds.
func collectNodesOfKind(node *sitter.Node, kinds ...string) []*sitter.Node {
	var result []*sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil {
			return
		}
		for _, kind := range kinds {
			if n.Type() == kind {
				result = append(result, n)
				break
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(node)
	return result
}

// childrenByField returns every child of node stored under field, in source order.
func childrenByField(node *sitter.Node, field string) []*sitter.Node {
	if node == nil || field == "" {
		return nil
	}
	var result []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.FieldNameForChild(i) != field {
			continue
		}
		if child := node.Child(i); child != nil {
			result = append(result, child)
		}
	}
	return result
}

func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	result := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child != nil {
			result = append(result, child)
		}
	}
	return result
}

func spanOf(node *sitter.Node) flow.Span {
	if node == nil {
		return flow.Span{}
	}
	return flow.Span{Start: node.StartByte(), End: node.EndByte()}
}
