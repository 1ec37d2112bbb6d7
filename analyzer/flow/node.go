package flow

import "slices"

// NodeID is a stable handle of a Node within its Graph.
type NodeID int

// Node represents a parameter or variable binding and the data flowing through it.
type Node struct {
	ID       NodeID
	Name     string
	Kind     NodeKind
	Type     string // declared type, parameters only
	Span     Span   // origin of the first sighting
	inbound  []NodeID
	outbound []NodeID
}

// Inbound returns nodes whose value flows into n.
func (n *Node) Inbound() []NodeID {
	return slices.Clone(n.inbound)
}

// Outbound returns nodes n flows into.
func (n *Node) Outbound() []NodeID {
	return slices.Clone(n.outbound)
}
