package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Declare(t *testing.T) {
	g := NewGraph("A.java", "java", Isolated)
	fn := g.Open(g.Root(), Function, "m", Span{})
	first := g.Declare(fn, "x", Variable, Span{Start: 1, End: 2})
	second := g.Declare(fn, "x", Variable, Span{Start: 5, End: 6})
	g.Close(fn)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, g.Len())
	assert.Len(t, fn.Nodes(), 1)
	assert.Equal(t, Span{Start: 1, End: 2}, g.Node(first).Span)
}

func TestGraph_AddFlow(t *testing.T) {
	tests := []struct {
		description  string
		declared     []string
		source, dest string
		wantIn       []string
		wantOut      []string
	}{
		{
			description: "symmetric edge",
			declared:    []string{"a", "b"},
			source:      "a",
			dest:        "b",
			wantIn:      []string{"a"},
			wantOut:     []string{"b"},
		},
		{
			description: "self flow ignored",
			declared:    []string{"b"},
			source:      "b",
			dest:        "b",
		},
		{
			description: "missing source ignored",
			declared:    []string{"b"},
			source:      "a",
			dest:        "b",
		},
		{
			description: "missing destination ignored",
			declared:    []string{"a"},
			source:      "a",
			dest:        "b",
		},
	}

	for _, tc := range tests {
		g := NewGraph("A.java", "java", Isolated)
		fn := g.Open(g.Root(), Function, "m", Span{})
		ids := map[string]NodeID{}
		for _, name := range tc.declared {
			ids[name] = g.Declare(fn, name, Variable, Span{})
		}
		g.AddFlow(tc.source, tc.dest, fn)
		g.AddFlow(tc.source, tc.dest, fn)

		if id, ok := ids[tc.dest]; ok {
			assert.Equal(t, tc.wantIn, nilIfEmpty(g.Names(g.Node(id).Inbound())), tc.description)
		}
		if id, ok := ids[tc.source]; ok {
			assert.Equal(t, tc.wantOut, nilIfEmpty(g.Names(g.Node(id).Outbound())), tc.description)
		}
	}
}

func TestGraph_Resolution(t *testing.T) {
	build := func(resolution Resolution) (*Graph, *Container, *Container) {
		g := NewGraph("A.java", "java", resolution)
		class := g.Open(g.Root(), Class, "A", Span{})
		g.Declare(class, "field", Variable, Span{})
		fn := g.Open(class, Function, "m", Span{})
		g.Declare(fn, "local", Variable, Span{})
		return g, class, fn
	}

	t.Run("isolated", func(t *testing.T) {
		g, class, fn := build(Isolated)
		_, ok := g.Lookup(fn, "field")
		assert.False(t, ok)
		g.AddFlow("field", "local", fn)
		local, _ := fn.Local("local")
		assert.Empty(t, g.Node(local).Inbound())

		assigned := g.Assign(fn, "field", Span{})
		fieldID, _ := class.Local("field")
		assert.NotEqual(t, fieldID, assigned)
	})

	t.Run("lexical", func(t *testing.T) {
		g, class, fn := build(Lexical)
		fieldID, _ := class.Local("field")
		id, ok := g.Lookup(fn, "field")
		require.True(t, ok)
		assert.Equal(t, fieldID, id)

		g.AddFlow("field", "local", fn)
		local, _ := fn.Local("local")
		assert.Equal(t, []string{"field"}, g.Names(g.Node(local).Inbound()))
		assert.Equal(t, []string{"local"}, g.Names(g.Node(fieldID).Outbound()))

		assert.Equal(t, fieldID, g.Assign(fn, "field", Span{}))
		_, ok = g.Lookup(class, "local")
		assert.False(t, ok)
	})
}

func TestGraph_Close(t *testing.T) {
	g := NewGraph("A.java", "java", Isolated)
	class := g.Open(g.Root(), Class, "A", Span{})
	first := g.Open(class, Function, "first", Span{})
	second := g.Open(class, Function, "", Span{})
	assert.Empty(t, class.Children())

	g.Close(second)
	g.Close(first)
	g.Close(first)
	g.Close(class)

	require.Len(t, g.Root().Children(), 1)
	assert.Equal(t, []*Container{second, first}, class.Children())
	assert.Equal(t, "A.java/A/first", first.Path())
	assert.Equal(t, "A.java/A/<no name>", second.Path())
	assert.Same(t, first, g.Container("A.java/A/first"))
}

func TestGraph_Close_SameName(t *testing.T) {
	g := NewGraph("a.go", "go", Isolated)
	var opened []*Container
	for _, qualifier := range []string{"", "", "*A", "*B", "*A", ""} {
		c := g.Open(g.Root(), Function, "Get", Span{})
		c.Qualifier = qualifier
		g.Close(c)
		opened = append(opened, c)
	}
	var segments []string
	for _, c := range opened {
		segments = append(segments, c.Segment())
	}
	assert.Equal(t, []string{"Get", "Get~2", "(*A).Get", "(*B).Get", "(*A).Get~2", "Get~3"}, segments)
	assert.Same(t, opened[4], g.Container("a.go/(*A).Get~2"))
	assert.Same(t, opened[1], g.Container("a.go/Get~2"))

	id := g.Declare(opened[1], "v", Variable, Span{})
	assert.Equal(t, g.Node(id), g.Find("a.go/Get~2", "v"))
	assert.Nil(t, g.Find("a.go/Get", "v"))
	assert.Equal(t, "a.go/Get~2#v", Address(opened[1], "v"))
}

func TestGraph_Find(t *testing.T) {
	g := NewGraph("A.java", "java", Isolated)
	class := g.Open(g.Root(), Class, "A", Span{})
	fn := g.Open(class, Function, "doPost", Span{})
	id := g.Declare(fn, "request", Parameter, Span{})
	g.Close(fn)
	g.Close(class)

	assert.Equal(t, g.Node(id), g.Find("A.java/A/doPost", "request"))
	assert.Nil(t, g.Find("A.java/A/doPost", "response"))
	assert.Nil(t, g.Find("A.java/B", "request"))
	assert.Nil(t, g.Node(42))
}

func TestParseResolution(t *testing.T) {
	r, err := ParseResolution("")
	assert.NoError(t, err)
	assert.Equal(t, Isolated, r)
	r, err = ParseResolution("lexical")
	assert.NoError(t, err)
	assert.Equal(t, Lexical, r)
	_, err = ParseResolution("dynamic")
	assert.Error(t, err)
}

func nilIfEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}
