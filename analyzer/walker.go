package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/taintflow/analyzer/flow"
	"github.com/viant/taintflow/analyzer/grammar"
)

// walker builds the Container tree of one parsed file. It is single threaded and
// never fails: unexpected shapes are skipped or descended into.
type walker struct {
	code          []byte
	grammar       *grammar.Grammar
	graph         *flow.Graph
	fields        bool
	receiverReads bool
}

func (w *walker) walkRoot(node *sitter.Node, file *flow.Container) {
	if node == nil {
		return
	}
	kind := node.Type()
	if rule, ok := w.grammar.Class(kind); ok {
		w.enterClass(node, rule, file)
		return
	}
	if w.grammar.TopLevelFunctions {
		if rule, ok := w.grammar.Function(kind); ok {
			w.enterFunction(node, rule, file)
			return
		}
	}
	for _, child := range namedChildren(node) {
		w.walkRoot(child, file)
	}
}

func (w *walker) enterClass(node *sitter.Node, rule grammar.Class, parent *flow.Container) {
	name := sourceSlice(node.ChildByFieldName(rule.Name), w.code)
	if name == "" {
		return
	}
	class := w.graph.Open(parent, flow.Class, name, spanOf(node))
	w.walkClass(node.ChildByFieldName(rule.Body), class)
	w.graph.Close(class)
}

func (w *walker) walkClass(body *sitter.Node, class *flow.Container) {
	for _, member := range namedChildren(body) {
		w.walkMember(member, class)
	}
}

func (w *walker) walkMember(member *sitter.Node, class *flow.Container) {
	kind := member.Type()
	if wrapper, ok := w.grammar.Wrapper(kind); ok {
		if inner := member.ChildByFieldName(wrapper.Field); inner != nil {
			w.walkMember(inner, class)
		}
		return
	}
	if rule, ok := w.grammar.Function(kind); ok {
		w.enterFunction(member, rule, class)
		return
	}
	if rule, ok := w.grammar.Class(kind); ok {
		w.enterClass(member, rule, class)
		return
	}
	if !w.fields {
		return
	}
	if rule, ok := w.grammar.Field(kind); ok {
		w.declare(member, rule, class)
	}
}

func (w *walker) enterFunction(node *sitter.Node, rule grammar.Function, parent *flow.Container) {
	name := sourceSlice(node.ChildByFieldName(rule.Name), w.code)
	if name == "" {
		return
	}
	function := w.graph.Open(parent, flow.Function, name, spanOf(node))
	function.Qualifier = w.receiverType(node, rule)
	w.walkMethod(node, rule, function)
	w.graph.Close(function)
}

// receiverType returns the declared type of a method receiver, e.g. *Server.
func (w *walker) receiverType(node *sitter.Node, rule grammar.Function) string {
	if rule.Receiver == "" {
		return ""
	}
	for _, param := range namedChildren(node.ChildByFieldName(rule.Receiver)) {
		if p, ok := w.grammar.Parameter(param.Type()); ok && p.Type != "" {
			return sourceSlice(param.ChildByFieldName(p.Type), w.code)
		}
	}
	return ""
}

func (w *walker) walkMethod(node *sitter.Node, rule grammar.Function, function *flow.Container) {
	if rule.Receiver != "" {
		w.declareParameters(node.ChildByFieldName(rule.Receiver), function)
	}
	w.declareParameters(node.ChildByFieldName(rule.Parameters), function)
	for _, statement := range namedChildren(node.ChildByFieldName(rule.Body)) {
		w.walkStatement(statement, function)
	}
}

func (w *walker) declareParameters(list *sitter.Node, function *flow.Container) {
	for _, param := range namedChildren(list) {
		rule, ok := w.grammar.Parameter(param.Type())
		if !ok {
			continue
		}
		var declaredType string
		if rule.Type != "" {
			declaredType = sourceSlice(param.ChildByFieldName(rule.Type), w.code)
		}
		for _, nameNode := range w.parameterNames(param, rule) {
			id := w.graph.Declare(function, sourceSlice(nameNode, w.code), flow.Parameter, spanOf(nameNode))
			if node := w.graph.Node(id); node.Type == "" {
				node.Type = declaredType
			}
		}
	}
}

func (w *walker) parameterNames(param *sitter.Node, rule grammar.Parameter) []*sitter.Node {
	if rule.Declarator != "" {
		for _, child := range namedChildren(param) {
			if child.Type() == rule.Declarator {
				param = child
				break
			}
		}
	}
	if rule.Name != "" {
		var result []*sitter.Node
		for _, candidate := range childrenByField(param, rule.Name) {
			if w.grammar.IsIdentifier(candidate.Type()) {
				result = append(result, candidate)
			}
		}
		if len(result) > 0 || rule.Declarator == "" {
			return result
		}
	}
	if w.grammar.IsIdentifier(param.Type()) {
		return []*sitter.Node{param}
	}
	for _, child := range namedChildren(param) {
		if w.grammar.IsIdentifier(child.Type()) {
			return []*sitter.Node{child}
		}
		// *args: int wraps the splat pattern in a typed parameter
		if nested, ok := w.grammar.Parameter(child.Type()); ok {
			return w.parameterNames(child, nested)
		}
	}
	return nil
}

func (w *walker) walkStatement(node *sitter.Node, function *flow.Container) {
	kind := node.Type()
	if rule, ok := w.grammar.Assignment(kind); ok {
		w.assign(node, rule, function)
		return
	}
	if rule, ok := w.grammar.Declaration(kind); ok {
		w.declare(node, rule, function)
		return
	}
	if rule, ok := w.grammar.Call(kind); ok {
		if receiver := rule.ReceiverOf(node); receiver != nil && w.grammar.IsIdentifier(receiver.Type()) {
			w.callFlow(node, rule, receiver, function)
			return
		}
	}
	for _, child := range namedChildren(node) {
		w.walkStatement(child, function)
	}
}

func (w *walker) assign(node *sitter.Node, rule grammar.Assignment, c *flow.Container) {
	left := node.ChildByFieldName(rule.Left)
	right := node.ChildByFieldName(rule.Right)
	if left == nil || right == nil {
		return
	}
	w.bind(w.unwrap(left), w.unwrap(right), c, false)
}

func (w *walker) declare(node *sitter.Node, rule grammar.Declaration, c *flow.Container) {
	if rule.Declarator != "" || rule.DeclaratorKind != "" {
		for _, declarator := range w.declarators(node, rule) {
			name := declarator.ChildByFieldName(rule.Name)
			value := declarator.ChildByFieldName(rule.Value)
			if name == nil || value == nil {
				continue
			}
			w.bind([]*sitter.Node{name}, w.unwrap(value), c, true)
		}
		return
	}
	value := node.ChildByFieldName(rule.Value)
	if value == nil {
		return
	}
	var names []*sitter.Node
	for _, name := range childrenByField(node, rule.Name) {
		names = append(names, w.unwrap(name)...)
	}
	w.bind(names, w.unwrap(value), c, true)
}

func (w *walker) declarators(node *sitter.Node, rule grammar.Declaration) []*sitter.Node {
	if rule.Declarator != "" {
		return childrenByField(node, rule.Declarator)
	}
	var result []*sitter.Node
	for _, child := range namedChildren(node) {
		if child.Type() == rule.DeclaratorKind {
			result = append(result, child)
		}
	}
	return result
}

// callFlow models a mutating call: every identifier among the arguments may flow
// into the receiver.
func (w *walker) callFlow(node *sitter.Node, rule grammar.Call, receiver *sitter.Node, c *flow.Container) {
	receiverName := sourceSlice(receiver, w.code)
	for _, arg := range collectNodesOfKind(node.ChildByFieldName(rule.Arguments), w.grammar.Identifiers...) {
		w.graph.AddFlow(sourceSlice(arg, w.code), receiverName, c)
	}
}

// bind registers every identifier target and adds the flows of the values it reads.
// Lists of equal length pair element-wise, otherwise each target reads every value.
func (w *walker) bind(targets, values []*sitter.Node, c *flow.Container, declaration bool) {
	pairwise := len(targets) == len(values)
	for i, target := range targets {
		if !w.grammar.IsIdentifier(target.Type()) {
			continue
		}
		name := sourceSlice(target, w.code)
		if declaration {
			w.graph.Declare(c, name, flow.Variable, spanOf(target))
		} else {
			w.graph.Assign(c, name, spanOf(target))
		}
		feed := values
		if pairwise {
			feed = values[i : i+1]
		}
		for _, value := range feed {
			for _, read := range w.readIdentifiers(value) {
				w.graph.AddFlow(sourceSlice(read, w.code), name, c)
			}
		}
	}
}

func (w *walker) unwrap(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	if w.grammar.IsList(node.Type()) {
		return namedChildren(node)
	}
	return []*sitter.Node{node}
}
