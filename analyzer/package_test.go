package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/taintflow/analyzer/flow"
	"github.com/viant/taintflow/analyzer/grammar"
	"go.uber.org/goleak"
	"golang.org/x/tools/txtar"
)

// extract writes a txtar archive into a temporary directory.
func extract(t *testing.T, archive string) string {
	t.Helper()
	ar, err := txtar.ParseFile(archive)
	require.NoError(t, err)
	dir := t.TempDir()
	for _, file := range ar.Files {
		location := filepath.Join(dir, filepath.FromSlash(file.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, file.Data, 0o644))
	}
	return dir
}

func graphPaths(graphs []*flow.Graph) []string {
	var result []string
	for _, graph := range graphs {
		result = append(result, graph.Path)
	}
	return result
}

func TestAnalyzer_AnalyzeDir(t *testing.T) {
	dir := extract(t, "testdata/batch.txtar")
	a := New(WithWorkers(2))
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	batch, err := a.AnalyzeDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"app/views.py", "cmd/main.go", "src/Servlet.java"}, graphPaths(batch.Graphs))
	assert.Empty(t, batch.Failures)
	assert.Equal(t, dir, batch.Root)

	for _, graph := range batch.Graphs {
		switch graph.Path {
		case "src/Servlet.java":
			assert.Equal(t, "java", graph.Language)
			assert.Equal(t, []string{"out"}, graph.Names(graph.Find("src/Servlet.java/Servlet/doPost", "name").Outbound()))
		case "app/views.py":
			assert.Equal(t, []string{"request"}, graph.Names(graph.Find("app/views.py/view", "data").Inbound()))
		case "cmd/main.go":
			assert.Equal(t, []string{"r"}, graph.Names(graph.Find("cmd/main.go/handle", "q").Inbound()))
		}
	}
}

func TestAnalyzer_AnalyzeDir_Failures(t *testing.T) {
	dir := extract(t, "testdata/batch.txtar")
	sources := SourceFiles(DefaultSkipDirs...)
	a := New(WithMatcher(func(info os.FileInfo) bool {
		return sources(info) || strings.HasSuffix(info.Name(), ".txt")
	}))
	batch, err := a.AnalyzeDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, batch.Graphs, 3)
	require.Len(t, batch.Failures, 1)
	assert.Equal(t, "notes.txt", batch.Failures[0].Path)
	assert.True(t, errors.Is(batch.Failures[0], grammar.ErrUnsupported))
	assert.Contains(t, batch.Failures[0].Error(), "notes.txt")
}

func TestAnalyzer_AnalyzeFile(t *testing.T) {
	dir := extract(t, "testdata/batch.txtar")
	graph, err := New().AnalyzeFile(context.Background(), filepath.Join(dir, "src", "Servlet.java"))
	require.NoError(t, err)
	assert.Equal(t, "java", graph.Language)
	assert.NotNil(t, graph.Find(graph.Root().Path()+"/Servlet/doPost", "request"))

	_, err = New().AnalyzeFile(context.Background(), filepath.Join(dir, "src", "Missing.java"))
	assert.Error(t, err)
}

func TestSourceFiles(t *testing.T) {
	dir := extract(t, "testdata/batch.txtar")
	match := SourceFiles("vendor", "gen*", "[")
	var testCases = []struct {
		description string
		path        string
		expect      bool
	}{
		{description: "java file", path: "src/Servlet.java", expect: true},
		{description: "markdown", path: "README.md", expect: false},
		{description: "source dir", path: "src", expect: true},
		{description: "skipped dir", path: "vendor", expect: false},
		{description: "hidden dir", path: ".git", expect: false},
		{description: "glob skipped dir", path: "generated", expect: false},
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "generated"), 0o755))
	for _, testCase := range testCases {
		info, err := os.Lstat(filepath.Join(dir, testCase.path))
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, match(info), testCase.description)
	}

	link := filepath.Join(dir, "link.java")
	require.NoError(t, os.Symlink(filepath.Join(dir, "src", "Servlet.java"), link))
	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.False(t, match(info))
}
