package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// readIdentifiers returns the identifier nodes read by expr, in source order and
// without deduplication. Only calls, object constructions and binary expressions are
// decomposed; every other non-identifier expression reads nothing.
func (w *walker) readIdentifiers(expr *sitter.Node) []*sitter.Node {
	if expr == nil {
		return nil
	}
	kind := expr.Type()
	if w.grammar.IsIdentifier(kind) {
		return []*sitter.Node{expr}
	}
	if call, ok := w.grammar.Call(kind); ok {
		var result []*sitter.Node
		if w.receiverReads {
			if receiver := call.ReceiverOf(expr); receiver != nil && w.grammar.IsIdentifier(receiver.Type()) {
				result = append(result, receiver)
			}
		}
		for _, arg := range namedChildren(expr.ChildByFieldName(call.Arguments)) {
			result = append(result, w.readIdentifiers(arg)...)
		}
		return result
	}
	if construction, ok := w.grammar.Construction(kind); ok {
		var result []*sitter.Node
		for _, arg := range namedChildren(expr.ChildByFieldName(construction.Arguments)) {
			result = append(result, w.readIdentifiers(arg)...)
		}
		return result
	}
	if binary, ok := w.grammar.Binary(kind); ok {
		result := w.readIdentifiers(expr.ChildByFieldName(binary.Left))
		return append(result, w.readIdentifiers(expr.ChildByFieldName(binary.Right))...)
	}
	return nil
}
