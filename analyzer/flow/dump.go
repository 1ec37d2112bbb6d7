package flow

import (
	"fmt"
	"io"
	"strings"
)

const indentation = 3

// Dump writes a textual rendering of the Container trees and their edges.
func Dump(w io.Writer, graphs ...*Graph) error {
	for _, g := range graphs {
		if err := g.dumpContainer(w, g.root, 0); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) dumpContainer(w io.Writer, c *Container, indent int) error {
	if _, err := fmt.Fprintf(w, "%s[container] name=%s kind=%s\n", pad(indent), c.DisplayName(), c.Kind); err != nil {
		return err
	}
	for _, child := range c.children {
		if err := g.dumpContainer(w, child, indent+indentation); err != nil {
			return err
		}
	}
	for _, id := range c.nodes {
		if err := g.dumpNode(w, g.nodes[id], indent+indentation); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) dumpNode(w io.Writer, n *Node, indent int) error {
	if _, err := fmt.Fprintf(w, "%s[node] name=%s kind=%s\n", pad(indent), n.Name, n.Kind); err != nil {
		return err
	}
	for _, id := range n.inbound {
		peer := g.nodes[id]
		if _, err := fmt.Fprintf(w, "%s <- name=%s kind=%s\n", pad(indent+indentation), peer.Name, peer.Kind); err != nil {
			return err
		}
	}
	for _, id := range n.outbound {
		peer := g.nodes[id]
		if _, err := fmt.Fprintf(w, "%s -> name=%s kind=%s\n", pad(indent+indentation), peer.Name, peer.Kind); err != nil {
			return err
		}
	}
	return nil
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}
