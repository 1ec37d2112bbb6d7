package flow

import (
	"fmt"
	"strings"
)

const noName = "<no name>"

// Span is the byte range of the syntax a Container or Node originates from.
type Span struct {
	Start uint32 `yaml:"start" json:"start"`
	End   uint32 `yaml:"end" json:"end"`
}

// Container represents a lexical scope: a file, a class or a function.
type Container struct {
	Kind ContainerKind
	Name string // empty when the construct has no resolvable name
	// Qualifier tells apart functions sharing a name in one scope, e.g. the receiver
	// type of a Go method.
	Qualifier string
	Span      Span
	segment   string
	parent    *Container
	children  []*Container
	nodes     []NodeID
	byName    map[string]NodeID
	sealed    bool
}

func newContainer(kind ContainerKind, name string, parent *Container, span Span) *Container {
	return &Container{
		Kind:   kind,
		Name:   name,
		Span:   span,
		parent: parent,
		byName: map[string]NodeID{},
	}
}

// Parent returns the enclosing Container, nil for the file Container.
func (c *Container) Parent() *Container {
	return c.parent
}

// Children returns sealed child Containers in completion order.
func (c *Container) Children() []*Container {
	return c.children
}

// Nodes returns the Nodes declared directly in this Container in declaration order.
func (c *Container) Nodes() []NodeID {
	return c.nodes
}

// Local looks a name up in this Container's own table.
func (c *Container) Local(name string) (NodeID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// DisplayName returns the name, or a placeholder when it is missing.
func (c *Container) DisplayName() string {
	if c.Name == "" {
		return noName
	}
	return c.Name
}

func (c *Container) label() string {
	if c.Qualifier == "" {
		return c.DisplayName()
	}
	return "(" + c.Qualifier + ")." + c.DisplayName()
}

// Segment returns the path element of c. It is unique among the closed children of
// a Container: a label already taken by an earlier sibling gets a ~N ordinal suffix.
func (c *Container) Segment() string {
	if c.segment != "" {
		return c.segment
	}
	return c.label()
}

func (c *Container) assignSegment() {
	label := c.label()
	c.segment = label
	taken := 0
	for _, sibling := range c.parent.children {
		if sibling.label() == label {
			taken++
		}
	}
	if taken > 0 {
		c.segment = fmt.Sprintf("%s~%d", label, taken+1)
	}
}

// Path returns the slash separated segments from the file Container down to c.
func (c *Container) Path() string {
	var names []string
	for cur := c; cur != nil; cur = cur.parent {
		names = append(names, cur.Segment())
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}
