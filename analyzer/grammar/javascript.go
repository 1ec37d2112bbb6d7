package grammar

import (
	"github.com/smacker/go-tree-sitter/javascript"
)

// JavaScript is the tree-sitter-javascript grammar table, JSX included. Parameters
// are untyped, so it carries no seed query.
var JavaScript = &Grammar{
	Name:              "javascript",
	Extensions:        []string{".js", ".jsx", ".mjs"},
	language:          javascript.GetLanguage,
	Identifiers:       []string{"identifier"},
	TopLevelFunctions: true,
	Classes: []Class{
		{Kind: "class_declaration", Name: "name", Body: "body"},
	},
	Functions: []Function{
		{Kind: "function_declaration", Name: "name", Parameters: "parameters", Body: "body"},
		{Kind: "method_definition", Name: "name", Parameters: "parameters", Body: "body"},
	},
	Parameters: []Parameter{
		{Kind: "identifier"},
		{Kind: "assignment_pattern", Name: "left"},
		{Kind: "rest_pattern"},
	},
	Assignments: []Assignment{
		{Kind: "assignment_expression", Left: "left", Right: "right"},
		{Kind: "augmented_assignment_expression", Left: "left", Right: "right"},
	},
	Declarations: []Declaration{
		{Kind: "lexical_declaration", DeclaratorKind: "variable_declarator", Name: "name", Value: "value"},
		{Kind: "variable_declaration", DeclaratorKind: "variable_declarator", Name: "name", Value: "value"},
	},
	Calls: []Call{
		{Kind: "call_expression", Function: "function", Selector: "member_expression", Object: "object", Arguments: "arguments"},
	},
	Constructions: []Construction{
		{Kind: "new_expression", Arguments: "arguments"},
	},
	Binaries: []Binary{
		{Kind: "binary_expression", Left: "left", Right: "right"},
	},
}
