package flow

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a Graph consumed by later taint passes.
// Every node is addressed as "<container path>#<name>".
type Document struct {
	Path        string          `yaml:"path" json:"path"`                         // Analysed file
	Language    string          `yaml:"language,omitempty" json:"language"`       // Grammar name
	Fingerprint string          `yaml:"fingerprint,omitempty" json:"fingerprint"` // Content hash
	Resolution  Resolution      `yaml:"resolution" json:"resolution"`             // Name resolution policy
	Containers  []*ContainerDoc `yaml:"containers" json:"containers"`             // Pre-order containers
	Edges       []*Edge         `yaml:"edges,omitempty" json:"edges,omitempty"`   // Flat edge list
}

// ContainerDoc describes a Container and its nodes.
type ContainerDoc struct {
	Path      string        `yaml:"path" json:"path"`
	Kind      ContainerKind `yaml:"kind" json:"kind"`
	Name      string        `yaml:"name,omitempty" json:"name,omitempty"`
	Qualifier string        `yaml:"qualifier,omitempty" json:"qualifier,omitempty"`
	Nodes     []*NodeDoc    `yaml:"nodes,omitempty" json:"nodes,omitempty"`
}

// NodeDoc describes a Node with neighbour addresses.
type NodeDoc struct {
	Address  string   `yaml:"address" json:"address"`
	Name     string   `yaml:"name" json:"name"`
	Kind     NodeKind `yaml:"kind" json:"kind"`
	Type     string   `yaml:"type,omitempty" json:"type,omitempty"`
	Inbound  []string `yaml:"inbound,omitempty" json:"inbound,omitempty"`
	Outbound []string `yaml:"outbound,omitempty" json:"outbound,omitempty"`
}

// Edge is a directed data flow between two node addresses.
type Edge struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// Address returns the address of a node declared in c.
func Address(c *Container, name string) string {
	return c.Path() + "#" + name
}

// Export converts g into a Document.
func Export(g *Graph) *Document {
	doc := &Document{
		Path:        g.Path,
		Language:    g.Language,
		Fingerprint: fmt.Sprintf("%016x", g.Fingerprint),
		Resolution:  g.resolution,
	}
	addresses := make([]string, len(g.nodes))
	g.Walk(func(c *Container) bool {
		for _, id := range c.nodes {
			addresses[id] = Address(c, g.nodes[id].Name)
		}
		return true
	})
	g.Walk(func(c *Container) bool {
		container := &ContainerDoc{Path: c.Path(), Kind: c.Kind, Name: c.Name, Qualifier: c.Qualifier}
		for _, id := range c.nodes {
			n := g.nodes[id]
			node := &NodeDoc{Address: addresses[id], Name: n.Name, Kind: n.Kind, Type: n.Type}
			for _, in := range n.inbound {
				node.Inbound = append(node.Inbound, addresses[in])
			}
			for _, out := range n.outbound {
				node.Outbound = append(node.Outbound, addresses[out])
				doc.Edges = append(doc.Edges, &Edge{Source: addresses[id], Target: addresses[out]})
			}
			container.Nodes = append(container.Nodes, node)
		}
		doc.Containers = append(doc.Containers, container)
		return true
	})
	return doc
}

// EncodeYAML writes documents as a YAML stream.
func EncodeYAML(w io.Writer, docs ...*Document) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	for _, doc := range docs {
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode %s: %w", doc.Path, err)
		}
	}
	return encoder.Close()
}

// EncodeJSON writes documents as an indented JSON array.
func EncodeJSON(w io.Writer, docs ...*Document) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode documents: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
