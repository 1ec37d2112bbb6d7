package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/afs"
	"github.com/viant/taintflow/analyzer/flow"
	"github.com/viant/taintflow/analyzer/grammar"
	"go.uber.org/zap"
)

// ErrParse is returned when the parser produces no tree.
var ErrParse = errors.New("failed to parse source")

// DefaultSkipDirs lists build output and dependency directories skipped by AnalyzeDir.
var DefaultSkipDirs = []string{"vendor", "node_modules", "target", "build", "out", "__pycache__"}

// Analyzer builds flow graphs from source files.
type Analyzer struct {
	grammar       *grammar.Grammar
	resolution    flow.Resolution
	fields        bool
	receiverReads bool
	workers       int
	logger        *zap.Logger
	fs            afs.Service
	match         MatcherFn
}

// Unit is a parsed compilation unit. The tree is owned by the unit and released by
// Close; nodes obtained from Root must not outlive it.
type Unit struct {
	Path    string
	Code    []byte
	Grammar *grammar.Grammar
	tree    *sitter.Tree
}

// Root returns the root of the syntax tree.
func (u *Unit) Root() *sitter.Node {
	return u.tree.RootNode()
}

// Close releases the syntax tree.
func (u *Unit) Close() {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
}

// New creates an analyzer.
func New(options ...Option) *Analyzer {
	ret := &Analyzer{
		resolution: flow.Isolated,
		workers:    runtime.NumCPU(),
		logger:     zap.NewNop(),
		fs:         afs.New(),
		match:      SourceFiles(DefaultSkipDirs...),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Parse parses code with the configured grammar, or the one matching path.
func (a *Analyzer) Parse(ctx context.Context, path string, code []byte) (*Unit, error) {
	g := a.grammar
	if g == nil {
		var err error
		if g, err = grammar.ForPath(path); err != nil {
			return nil, err
		}
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(g.Language())
	tree, err := parser.ParseCtx(ctx, nil, code)
	if err != nil {
		return nil, fmt.Errorf("%w %v: %v", ErrParse, path, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%w %v", ErrParse, path)
	}
	if tree.RootNode().HasError() {
		a.logger.Debug("syntax errors", zap.String("path", path))
	}
	return &Unit{Path: path, Code: code, Grammar: g, tree: tree}, nil
}

// Graph builds the flow graph of a parsed unit.
func (a *Analyzer) Graph(unit *Unit) *flow.Graph {
	graph := flow.NewGraph(unit.Path, unit.Grammar.Name, a.resolution)
	if fingerprint, err := flow.Fingerprint(unit.Code); err == nil {
		graph.Fingerprint = fingerprint
	} else {
		a.logger.Debug("fingerprint", zap.String("path", unit.Path), zap.Error(err))
	}
	a.Build(unit.Root(), unit.Code, unit.Grammar, graph)
	return graph
}

// Build walks an already parsed tree into graph.
func (a *Analyzer) Build(root *sitter.Node, code []byte, g *grammar.Grammar, graph *flow.Graph) {
	w := &walker{
		code:          code,
		grammar:       g,
		graph:         graph,
		fields:        a.fields,
		receiverReads: a.receiverReads,
	}
	w.walkRoot(root, graph.Root())
}

// AnalyzeSource parses code and builds its flow graph.
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, code []byte) (*flow.Graph, error) {
	unit, err := a.Parse(ctx, path, code)
	if err != nil {
		return nil, err
	}
	defer unit.Close()
	return a.Graph(unit), nil
}

// ParseFile reads and parses URL.
func (a *Analyzer) ParseFile(ctx context.Context, URL string) (*Unit, error) {
	code, err := a.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	return a.Parse(ctx, URL, code)
}

// AnalyzeFile reads URL and builds its flow graph.
func (a *Analyzer) AnalyzeFile(ctx context.Context, URL string) (*flow.Graph, error) {
	unit, err := a.ParseFile(ctx, URL)
	if err != nil {
		return nil, err
	}
	defer unit.Close()
	return a.Graph(unit), nil
}
