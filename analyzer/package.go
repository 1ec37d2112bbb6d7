package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"time"

	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/taintflow/analyzer/flow"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Batch is the result of analysing a directory tree. Graphs and Failures are sorted
// by path.
type Batch struct {
	Root     string
	Graphs   []*flow.Graph
	Failures []*Failure
	Elapsed  time.Duration
}

// Failure records a file that could not be analysed.
type Failure struct {
	Path string
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%v: %v", f.Path, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

type sourceFile struct {
	URL  string
	Path string
}

// AnalyzeDir walks root and analyses every matched file concurrently. A file that
// cannot be read or parsed is recorded as a failure and never aborts the batch; only
// a failing directory walk is returned as an error.
func (a *Analyzer) AnalyzeDir(ctx context.Context, root string) (*Batch, error) {
	started := time.Now()
	files, err := a.sourceFiles(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %v: %w", root, err)
	}
	graphs := make([]*flow.Graph, len(files))
	failures := make([]*Failure, len(files))

	group := errgroup.Group{}
	group.SetLimit(a.workers)
	for i, file := range files {
		group.Go(func() error {
			graph, err := a.analyzeFile(ctx, file)
			if err != nil {
				a.logger.Warn("skipping file", zap.String("path", file.Path), zap.Error(err))
				failures[i] = &Failure{Path: file.Path, Err: err}
				return nil
			}
			a.logger.Debug("analysed file", zap.String("path", file.Path), zap.Int("nodes", graph.Len()))
			graphs[i] = graph
			return nil
		})
	}
	_ = group.Wait()

	batch := &Batch{Root: root}
	for i := range files {
		if graphs[i] != nil {
			batch.Graphs = append(batch.Graphs, graphs[i])
		}
		if failures[i] != nil {
			batch.Failures = append(batch.Failures, failures[i])
		}
	}
	batch.Elapsed = time.Since(started)
	return batch, nil
}

func (a *Analyzer) analyzeFile(ctx context.Context, file *sourceFile) (*flow.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	code, err := a.fs.DownloadWithURL(ctx, file.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", file.URL, err)
	}
	return a.AnalyzeSource(ctx, file.Path, code)
}

func (a *Analyzer) sourceFiles(ctx context.Context, root string) ([]*sourceFile, error) {
	var files []*sourceFile
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if !a.match(info) {
			return false, nil
		}
		if info.IsDir() {
			return true, nil
		}
		files = append(files, &sourceFile{
			URL:  url.Join(url.Join(baseURL, parent), info.Name()),
			Path: path.Join(parent, info.Name()),
		})
		return true, nil
	}
	if err := a.fs.Walk(ctx, root, visitor); err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}
