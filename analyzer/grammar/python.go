package grammar

import (
	"github.com/smacker/go-tree-sitter/python"
)

// Python is the tree-sitter-python grammar table.
var Python = &Grammar{
	Name:              "python",
	Extensions:        []string{".py"},
	language:          python.GetLanguage,
	Identifiers:       []string{"identifier"},
	TopLevelFunctions: true,
	Classes: []Class{
		{Kind: "class_definition", Name: "name", Body: "body"},
	},
	Functions: []Function{
		{Kind: "function_definition", Name: "name", Parameters: "parameters", Body: "body"},
	},
	Parameters: []Parameter{
		{Kind: "identifier"},
		{Kind: "typed_parameter", Type: "type"},
		{Kind: "default_parameter", Name: "name"},
		{Kind: "typed_default_parameter", Name: "name", Type: "type"},
		{Kind: "list_splat_pattern"},
		{Kind: "dictionary_splat_pattern"},
	},
	Assignments: []Assignment{
		{Kind: "assignment", Left: "left", Right: "right"},
		{Kind: "augmented_assignment", Left: "left", Right: "right"},
	},
	Calls: []Call{
		{Kind: "call", Function: "function", Selector: "attribute", Object: "object", Arguments: "arguments"},
	},
	Binaries: []Binary{
		{Kind: "binary_operator", Left: "left", Right: "right"},
	},
	Lists:    []string{"pattern_list", "expression_list"},
	Wrappers: []Wrapper{{Kind: "decorated_definition", Field: "definition"}},
	Seed: `(function_definition
  name: (identifier) @method
  parameters: (parameters
    {anchor}(typed_parameter
      (identifier) @param
      type: (type) @type))) @function`,
}
