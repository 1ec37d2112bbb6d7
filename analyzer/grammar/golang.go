package grammar

import (
	"github.com/smacker/go-tree-sitter/golang"
)

// Go is the tree-sitter-go grammar table. Go has no classes: functions and methods
// open function scopes directly under the file.
var Go = &Grammar{
	Name:              "go",
	Extensions:        []string{".go"},
	language:          golang.GetLanguage,
	Identifiers:       []string{"identifier"},
	TopLevelFunctions: true,
	Functions: []Function{
		{Kind: "function_declaration", Name: "name", Parameters: "parameters", Body: "body"},
		{Kind: "method_declaration", Name: "name", Receiver: "receiver", Parameters: "parameters", Body: "body"},
	},
	Parameters: []Parameter{
		{Kind: "parameter_declaration", Name: "name", Type: "type"},
		{Kind: "variadic_parameter_declaration", Name: "name", Type: "type"},
	},
	Assignments: []Assignment{
		{Kind: "assignment_statement", Left: "left", Right: "right"},
	},
	Declarations: []Declaration{
		{Kind: "short_var_declaration", Name: "left", Value: "right"},
		{Kind: "var_spec", Name: "name", Value: "value"},
	},
	Calls: []Call{
		{Kind: "call_expression", Function: "function", Selector: "selector_expression", Object: "operand", Arguments: "arguments"},
	},
	Binaries: []Binary{
		{Kind: "binary_expression", Left: "left", Right: "right"},
	},
	Lists: []string{"expression_list"},
	Seed: `(function_declaration
  name: (identifier) @method
  parameters: (parameter_list
    {anchor}(parameter_declaration
      name: (identifier) @param
      type: (_) @type))) @function
(method_declaration
  name: (field_identifier) @method
  parameters: (parameter_list
    {anchor}(parameter_declaration
      name: (identifier) @param
      type: (_) @type))) @function`,
}
