package source

import (
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/taintflow/analyzer/flow"
	"github.com/viant/taintflow/analyzer/grammar"
)

// ErrNoMatch reports that no entry point matched the seed rules.
var ErrNoMatch = errors.New("no taint source matched")

// Seed is a matched taint source parameter.
type Seed struct {
	Method    string    `yaml:"method" json:"method"`
	Parameter string    `yaml:"parameter" json:"parameter"`
	Type      string    `yaml:"type" json:"type"`
	Function  flow.Span `yaml:"function" json:"function"`
	Span      flow.Span `yaml:"span" json:"span"`
}

// Tainted is a seed resolved to its PARAMETER node.
type Tainted struct {
	Seed `yaml:",inline"`
	Path string     `yaml:"path" json:"path"`
	Node *flow.Node `yaml:"-" json:"-"`
}

// Address returns the container-path#name address of the tainted node.
func (t *Tainted) Address() string {
	return t.Path + "#" + t.Parameter
}

type compiledRule struct {
	Rule
	query *sitter.Query
}

// Matcher runs the seed query of one grammar.
type Matcher struct {
	grammar *grammar.Grammar
	rules   []*compiledRule
}

// NewMatcher compiles the seed query of g for each rule, using the language defaults
// when no rule is given.
func NewMatcher(g *grammar.Grammar, rules ...Rule) (*Matcher, error) {
	if g.Seed == "" {
		return nil, fmt.Errorf("%w: %v has no seed query", grammar.ErrUnsupported, g.Name)
	}
	if len(rules) == 0 {
		rules = DefaultRules(g.Name)
	}
	ret := &Matcher{grammar: g}
	for _, rule := range rules {
		query, err := sitter.NewQuery([]byte(rule.query(g.Seed)), g.Language())
		if err != nil {
			ret.Close()
			return nil, fmt.Errorf("failed to compile %v seed query: %w", g.Name, err)
		}
		ret.rules = append(ret.rules, &compiledRule{Rule: rule, query: query})
	}
	return ret, nil
}

// Close releases the compiled queries.
func (m *Matcher) Close() {
	for _, rule := range m.rules {
		rule.query.Close()
	}
	m.rules = nil
}

// Match returns the seeds found under root, ordered by position.
func (m *Matcher) Match(root *sitter.Node, code []byte) []*Seed {
	var result []*Seed
	seen := map[flow.Span]bool{}
	for _, rule := range m.rules {
		cursor := sitter.NewQueryCursor()
		cursor.Exec(rule.query, root)
		for {
			match, ok := cursor.NextMatch()
			if !ok {
				break
			}
			seed := &Seed{}
			for _, capture := range match.Captures {
				switch rule.query.CaptureNameForId(capture.Index) {
				case "method":
					seed.Method = capture.Node.Content(code)
				case "param":
					seed.Parameter = capture.Node.Content(code)
					seed.Span = flow.Span{Start: capture.Node.StartByte(), End: capture.Node.EndByte()}
				case "type":
					seed.Type = capture.Node.Content(code)
				case "function":
					seed.Function = flow.Span{Start: capture.Node.StartByte(), End: capture.Node.EndByte()}
				}
			}
			if !rule.accept(seed) || seen[seed.Span] {
				continue
			}
			seen[seed.Span] = true
			result = append(result, seed)
		}
		cursor.Close()
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Span.Start < result[j].Span.Start
	})
	return result
}

// Resolve maps seeds onto the PARAMETER nodes of graph. It returns ErrNoMatch when
// no seed resolves.
func Resolve(graph *flow.Graph, seeds []*Seed) ([]*Tainted, error) {
	functions := map[flow.Span]*flow.Container{}
	graph.Walk(func(c *flow.Container) bool {
		if c.Kind == flow.Function {
			functions[c.Span] = c
		}
		return true
	})
	var result []*Tainted
	for _, seed := range seeds {
		function, ok := functions[seed.Function]
		if !ok {
			continue
		}
		id, ok := function.Local(seed.Parameter)
		if !ok {
			continue
		}
		node := graph.Node(id)
		if node.Kind != flow.Parameter {
			continue
		}
		result = append(result, &Tainted{Seed: *seed, Path: function.Path(), Node: node})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoMatch, graph.Path)
	}
	return result, nil
}
