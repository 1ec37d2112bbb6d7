package grammar

import (
	"github.com/smacker/go-tree-sitter/java"
)

// Java is the tree-sitter-java grammar table.
var Java = &Grammar{
	Name:        "java",
	Extensions:  []string{".java"},
	language:    java.GetLanguage,
	Identifiers: []string{"identifier"},
	Classes: []Class{
		{Kind: "class_declaration", Name: "name", Body: "body"},
	},
	Functions: []Function{
		{Kind: "method_declaration", Name: "name", Parameters: "parameters", Body: "body"},
		{Kind: "constructor_declaration", Name: "name", Parameters: "parameters", Body: "body"},
	},
	Parameters: []Parameter{
		{Kind: "formal_parameter", Name: "name", Type: "type"},
		{Kind: "spread_parameter", Declarator: "variable_declarator", Name: "name"},
	},
	Assignments: []Assignment{
		{Kind: "assignment_expression", Left: "left", Right: "right"},
	},
	Declarations: []Declaration{
		{Kind: "local_variable_declaration", Declarator: "declarator", Name: "name", Value: "value"},
	},
	Fields: []Declaration{
		{Kind: "field_declaration", Declarator: "declarator", Name: "name", Value: "value"},
	},
	Calls: []Call{
		{Kind: "method_invocation", Receiver: "object", Arguments: "arguments"},
	},
	Constructions: []Construction{
		{Kind: "object_creation_expression", Arguments: "arguments"},
	},
	Binaries: []Binary{
		{Kind: "binary_expression", Left: "left", Right: "right"},
	},
	Seed: `(method_declaration
  name: (identifier) @method
  parameters: (formal_parameters
    {anchor}(formal_parameter
      type: (_) @type
      name: (identifier) @param))) @function`,
}
