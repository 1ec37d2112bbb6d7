package grammar

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrUnsupported is returned when no grammar handles a language or file extension.
var ErrUnsupported = errors.New("unsupported language")

// Grammar maps the walker's syntactic roles onto the node kinds and field names of a
// tree-sitter grammar.
type Grammar struct {
	Name       string
	Extensions []string
	language   func() *sitter.Language

	Identifiers []string
	// TopLevelFunctions creates function scopes for functions met outside any class.
	TopLevelFunctions bool
	Classes           []Class
	Functions         []Function
	Parameters        []Parameter
	Assignments       []Assignment
	Declarations      []Declaration
	Fields            []Declaration
	Calls             []Call
	Constructions     []Construction
	Binaries          []Binary
	Lists             []string
	Wrappers          []Wrapper
	// Seed is the entry point query template, see the source package.
	Seed string
}

// Class describes a class-like declaration.
type Class struct {
	Kind, Name, Body string
}

// Function describes a function or method declaration.
type Function struct {
	Kind, Name, Receiver, Parameters, Body string
}

// Parameter describes a formal parameter. Declarator names the child kind holding
// the name, if any. An empty Name selects the node itself when it is an identifier,
// or its first identifier or nested parameter child.
type Parameter struct {
	Kind, Declarator, Name, Type string
}

// Assignment describes an assignment expression.
type Assignment struct {
	Kind, Left, Right string
}

// Declaration describes a declaration with initializers. Declarator is empty when the
// names and value are fields of the declaration itself. DeclaratorKind selects the
// declarator children by kind for grammars that do not name them.
type Declaration struct {
	Kind, Declarator, DeclaratorKind, Name, Value string
}

// Call describes a call. The receiver is either the Receiver field of the call, or the
// Object field of the Function field when that one is of the Selector kind.
type Call struct {
	Kind, Receiver, Function, Selector, Object, Arguments string
}

// Construction describes an object creation expression.
type Construction struct {
	Kind, Arguments string
}

// Binary describes a binary expression.
type Binary struct {
	Kind, Left, Right string
}

// Wrapper describes a node that wraps a declaration, e.g. a decorator.
type Wrapper struct {
	Kind, Field string
}

// ReceiverOf returns the receiver expression of call n, or nil.
func (c Call) ReceiverOf(n *sitter.Node) *sitter.Node {
	if c.Receiver != "" {
		return n.ChildByFieldName(c.Receiver)
	}
	if c.Function == "" {
		return nil
	}
	fn := n.ChildByFieldName(c.Function)
	if fn == nil || fn.Type() != c.Selector {
		return nil
	}
	return fn.ChildByFieldName(c.Object)
}

// Language returns the tree-sitter language.
func (g *Grammar) Language() *sitter.Language {
	return g.language()
}

// IsIdentifier reports whether kind is an identifier kind.
func (g *Grammar) IsIdentifier(kind string) bool {
	for _, candidate := range g.Identifiers {
		if candidate == kind {
			return true
		}
	}
	return false
}

// IsList reports whether kind is an expression list kind.
func (g *Grammar) IsList(kind string) bool {
	for _, candidate := range g.Lists {
		if candidate == kind {
			return true
		}
	}
	return false
}

func (c Class) kind() string        { return c.Kind }
func (f Function) kind() string     { return f.Kind }
func (p Parameter) kind() string    { return p.Kind }
func (a Assignment) kind() string   { return a.Kind }
func (d Declaration) kind() string  { return d.Kind }
func (c Call) kind() string         { return c.Kind }
func (c Construction) kind() string { return c.Kind }
func (b Binary) kind() string       { return b.Kind }
func (w Wrapper) kind() string      { return w.Kind }

type kinded interface{ kind() string }

func lookup[T kinded](items []T, kind string) (T, bool) {
	for _, item := range items {
		if item.kind() == kind {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (g *Grammar) Class(kind string) (Class, bool)             { return lookup(g.Classes, kind) }
func (g *Grammar) Function(kind string) (Function, bool)       { return lookup(g.Functions, kind) }
func (g *Grammar) Parameter(kind string) (Parameter, bool)     { return lookup(g.Parameters, kind) }
func (g *Grammar) Assignment(kind string) (Assignment, bool)   { return lookup(g.Assignments, kind) }
func (g *Grammar) Declaration(kind string) (Declaration, bool) { return lookup(g.Declarations, kind) }
func (g *Grammar) Field(kind string) (Declaration, bool)       { return lookup(g.Fields, kind) }
func (g *Grammar) Call(kind string) (Call, bool)               { return lookup(g.Calls, kind) }
func (g *Grammar) Construction(kind string) (Construction, bool) {
	return lookup(g.Constructions, kind)
}
func (g *Grammar) Binary(kind string) (Binary, bool)   { return lookup(g.Binaries, kind) }
func (g *Grammar) Wrapper(kind string) (Wrapper, bool) { return lookup(g.Wrappers, kind) }

var registry = []*Grammar{Java, Go, Python, JavaScript}

// ForName returns the grammar registered under name.
func ForName(name string) (*Grammar, error) {
	for _, g := range registry {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
}

// ForPath returns the grammar handling the file extension of path.
func ForPath(path string) (*Grammar, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, g := range registry {
		for _, candidate := range g.Extensions {
			if candidate == ext {
				return g, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
}

// Supported reports whether any grammar handles path.
func Supported(path string) bool {
	_, err := ForPath(path)
	return err == nil
}
