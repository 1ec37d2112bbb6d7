package flow

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sample() *Graph {
	g := NewGraph("Servlet.java", "java", Isolated)
	class := g.Open(g.Root(), Class, "Servlet", Span{})
	fn := g.Open(class, Function, "doPost", Span{})
	request := g.Declare(fn, "request", Parameter, Span{})
	g.Node(request).Type = "HttpServletRequest"
	g.Declare(fn, "name", Variable, Span{})
	g.Declare(fn, "out", Variable, Span{})
	g.AddFlow("name", "out", fn)
	g.Close(fn)
	g.Close(class)
	return g
}

func TestDump(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Dump(buf, sample()))
	expected := strings.Join([]string{
		"[container] name=Servlet.java kind=FILE",
		"   [container] name=Servlet kind=CLASS",
		"      [container] name=doPost kind=FUNCTION",
		"         [node] name=request kind=PARAMETER",
		"         [node] name=name kind=VARIABLE",
		"             -> name=out kind=VARIABLE",
		"         [node] name=out kind=VARIABLE",
		"             <- name=name kind=VARIABLE",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestExport(t *testing.T) {
	doc := Export(sample())
	require.Len(t, doc.Containers, 3)
	fn := doc.Containers[2]
	assert.Equal(t, "Servlet.java/Servlet/doPost", fn.Path)
	require.Len(t, fn.Nodes, 3)
	assert.Equal(t, "HttpServletRequest", fn.Nodes[0].Type)
	assert.Equal(t, []string{"Servlet.java/Servlet/doPost#out"}, fn.Nodes[1].Outbound)
	assert.Equal(t, []string{"Servlet.java/Servlet/doPost#name"}, fn.Nodes[2].Inbound)
	assert.Equal(t, []*Edge{{Source: "Servlet.java/Servlet/doPost#name", Target: "Servlet.java/Servlet/doPost#out"}}, doc.Edges)

	buf := &bytes.Buffer{}
	require.NoError(t, EncodeYAML(buf, doc))
	decoded := &Document{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), decoded))
	assert.Equal(t, doc.Edges, decoded.Edges)

	buf.Reset()
	require.NoError(t, EncodeJSON(buf, doc))
	assert.Contains(t, buf.String(), `"address": "Servlet.java/Servlet/doPost#request"`)
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint([]byte("class A {}"))
	require.NoError(t, err)
	b, err := Fingerprint([]byte("class B {}"))
	require.NoError(t, err)
	again, _ := Fingerprint([]byte("class A {}"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, again)
}
