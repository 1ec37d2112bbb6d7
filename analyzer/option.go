package analyzer

import (
	"os"
	"strings"

	"github.com/gobwas/glob"
	"github.com/viant/afs"
	"github.com/viant/taintflow/analyzer/flow"
	"github.com/viant/taintflow/analyzer/grammar"
	"go.uber.org/zap"
)

type Option func(*Analyzer)

// MatcherFn selects the directories to descend into and the files to analyse.
type MatcherFn func(info os.FileInfo) bool

// WithResolution sets the name resolution policy of built graphs.
func WithResolution(resolution flow.Resolution) Option {
	return func(a *Analyzer) {
		a.resolution = resolution
	}
}

// WithFields registers initialized class fields in the class Container.
func WithFields(enabled bool) Option {
	return func(a *Analyzer) {
		a.fields = enabled
	}
}

// WithReceiverReads makes a call read its identifier receiver, so that
// x = obj.get() flows obj into x.
func WithReceiverReads(enabled bool) Option {
	return func(a *Analyzer) {
		a.receiverReads = enabled
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithWorkers limits the number of files analysed concurrently by AnalyzeDir.
func WithWorkers(workers int) Option {
	return func(a *Analyzer) {
		if workers > 0 {
			a.workers = workers
		}
	}
}

func WithFS(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

func WithMatcher(matcher MatcherFn) Option {
	return func(a *Analyzer) {
		a.match = matcher
	}
}

// WithGrammar forces a grammar instead of dispatching on the file extension.
func WithGrammar(g *grammar.Grammar) Option {
	return func(a *Analyzer) {
		a.grammar = g
	}
}

// SourceFiles matches files with a supported extension, skipping symbolic links,
// hidden directories and directories whose name matches one of the skip globs.
func SourceFiles(skipDirs ...string) MatcherFn {
	skips := make([]glob.Glob, 0, len(skipDirs))
	for _, pattern := range skipDirs {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			compiled = glob.MustCompile(glob.QuoteMeta(pattern))
		}
		skips = append(skips, compiled)
	}
	return func(info os.FileInfo) bool {
		name := info.Name()
		if info.Mode()&os.ModeSymlink != 0 {
			return false
		}
		if info.IsDir() {
			if strings.HasPrefix(name, ".") && len(name) > 1 {
				return false
			}
			for _, skip := range skips {
				if skip.Match(name) {
					return false
				}
			}
			return true
		}
		return grammar.Supported(name)
	}
}
