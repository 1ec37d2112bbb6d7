package flow

import "slices"

// Graph is the data-flow graph of a single compilation unit. It owns every Node in an
// arena addressed by NodeID; Containers only hold handles, so the ordered list and the
// name table of a Container always observe the same edges.
type Graph struct {
	Path        string
	Language    string
	Fingerprint uint64
	resolution  Resolution
	root        *Container
	nodes       []*Node
}

// NewGraph creates a graph with an empty file Container.
func NewGraph(path, language string, resolution Resolution) *Graph {
	if resolution == "" {
		resolution = Isolated
	}
	return &Graph{
		Path:       path,
		Language:   language,
		resolution: resolution,
		root:       newContainer(File, path, nil, Span{}),
	}
}

// Root returns the file Container.
func (g *Graph) Root() *Container {
	return g.root
}

// Resolution returns the name resolution policy.
func (g *Graph) Resolution() Resolution {
	return g.resolution
}

// Node returns the node for id, nil when out of range.
func (g *Graph) Node(id NodeID) *Node {
	if int(id) < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Open creates a Container under parent. It becomes visible among the parent's
// children only once closed.
func (g *Graph) Open(parent *Container, kind ContainerKind, name string, span Span) *Container {
	return newContainer(kind, name, parent, span)
}

// Close seals c, fixes its path segment and appends it to its parent.
func (g *Graph) Close(c *Container) {
	if c.sealed || c.parent == nil {
		return
	}
	c.sealed = true
	c.assignSegment()
	c.parent.children = append(c.parent.children, c)
}

// Declare registers name in c's own table, reusing an existing node of the same name.
func (g *Graph) Declare(c *Container, name string, kind NodeKind, span Span) NodeID {
	if id, ok := c.byName[name]; ok {
		return id
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &Node{ID: id, Name: name, Kind: kind, Span: span})
	c.nodes = append(c.nodes, id)
	c.byName[name] = id
	return id
}

// Assign returns the node an assignment to name writes: an existing binding visible
// from c under the resolution policy, otherwise a new variable in c.
func (g *Graph) Assign(c *Container, name string, span Span) NodeID {
	if id, ok := g.Lookup(c, name); ok {
		return id
	}
	return g.Declare(c, name, Variable, span)
}

// Lookup resolves name from c under the resolution policy.
func (g *Graph) Lookup(c *Container, name string) (NodeID, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if id, ok := cur.byName[name]; ok {
			return id, true
		}
		if g.resolution != Lexical {
			break
		}
	}
	return 0, false
}

// AddFlow records that data flows from source into dest. Unresolved names and self
// flows are ignored.
func (g *Graph) AddFlow(source, dest string, c *Container) {
	if source == dest {
		return
	}
	from, ok := g.Lookup(c, source)
	if !ok {
		return
	}
	to, ok := g.Lookup(c, dest)
	if !ok {
		return
	}
	g.connect(from, to)
}

func (g *Graph) connect(from, to NodeID) {
	if from == to {
		return
	}
	src, dst := g.nodes[from], g.nodes[to]
	if slices.Contains(dst.inbound, from) {
		return
	}
	dst.inbound = append(dst.inbound, from)
	src.outbound = append(src.outbound, to)
}

// Walk visits Containers in pre-order, stopping descent when fn returns false.
func (g *Graph) Walk(fn func(c *Container) bool) {
	var visit func(c *Container)
	visit = func(c *Container) {
		if !fn(c) {
			return
		}
		for _, child := range c.children {
			visit(child)
		}
	}
	visit(g.root)
}

// Container returns the closed Container with the given path.
func (g *Graph) Container(path string) *Container {
	var result *Container
	g.Walk(func(c *Container) bool {
		if result != nil {
			return false
		}
		if c.Path() == path {
			result = c
			return false
		}
		return true
	})
	return result
}

// Find returns the node addressed by container path and name.
func (g *Graph) Find(path, name string) *Node {
	c := g.Container(path)
	if c == nil {
		return nil
	}
	id, ok := c.Local(name)
	if !ok {
		return nil
	}
	return g.nodes[id]
}

// Names maps ids to node names.
func (g *Graph) Names(ids []NodeID) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if n := g.Node(id); n != nil {
			result = append(result, n.Name)
		}
	}
	return result
}
