package flow

import "fmt"

// ContainerKind identifies the lexical construct a Container was created for.
type ContainerKind string

const (
	File     ContainerKind = "FILE"
	Class    ContainerKind = "CLASS"
	Function ContainerKind = "FUNCTION"
)

// NodeKind identifies how a binding was introduced.
type NodeKind string

const (
	Parameter NodeKind = "PARAMETER"
	Variable  NodeKind = "VARIABLE"
)

// Resolution controls how names are resolved against the Container tree.
type Resolution string

const (
	// Isolated resolves names against the current Container's own table only.
	Isolated Resolution = "isolated"
	// Lexical falls back through enclosing Containers up to the file.
	Lexical Resolution = "lexical"
)

// ParseResolution converts a configuration value into a Resolution, empty means Isolated.
func ParseResolution(value string) (Resolution, error) {
	switch Resolution(value) {
	case "", Isolated:
		return Isolated, nil
	case Lexical:
		return Lexical, nil
	}
	return "", fmt.Errorf("unsupported resolution: %q", value)
}
