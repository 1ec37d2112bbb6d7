package source

import (
	"slices"
	"strings"
)

// Rule selects taint source parameters: a parameter of one of ParamTypes declared by a
// function named one of Methods. Empty Methods or ParamTypes match anything.
// FirstOnly restricts the match to the first parameter of the list.
type Rule struct {
	Methods    []string `yaml:"methods,omitempty" json:"methods,omitempty"`
	ParamTypes []string `yaml:"paramTypes,omitempty" json:"paramTypes,omitempty"`
	FirstOnly  bool     `yaml:"firstOnly,omitempty" json:"firstOnly,omitempty"`
}

// DefaultRules returns the servlet style entry points of a language.
func DefaultRules(language string) []Rule {
	switch strings.ToLower(language) {
	case "java":
		return []Rule{{
			Methods:    []string{"doGet", "doPost", "doPatch"},
			ParamTypes: []string{"HttpServletRequest"},
			FirstOnly:  true,
		}}
	case "go":
		return []Rule{{ParamTypes: []string{"*http.Request"}}}
	case "python":
		return []Rule{{ParamTypes: []string{"Request", "HttpRequest"}}}
	}
	return nil
}

func (r *Rule) query(template string) string {
	anchor := ""
	if r.FirstOnly {
		anchor = ". "
	}
	return strings.ReplaceAll(template, "{anchor}", anchor)
}

func (r *Rule) accept(seed *Seed) bool {
	if len(r.Methods) > 0 && !slices.Contains(r.Methods, seed.Method) {
		return false
	}
	if len(r.ParamTypes) > 0 && !slices.Contains(r.ParamTypes, seed.Type) {
		return false
	}
	return seed.Parameter != ""
}
