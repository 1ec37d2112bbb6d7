package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected *Grammar
		wantErr  bool
	}{
		{path: "src/Servlet.java", expected: Java},
		{path: "cmd/main.go", expected: Go},
		{path: "app/views.py", expected: Python},
		{path: "LEGACY.JAVA", expected: Java},
		{path: "web/app.jsx", expected: JavaScript},
		{path: "README.md", wantErr: true},
	}
	for _, tc := range tests {
		g, err := ForPath(tc.path)
		if tc.wantErr {
			assert.True(t, errors.Is(err, ErrUnsupported), tc.path)
			assert.False(t, Supported(tc.path))
			continue
		}
		assert.NoError(t, err, tc.path)
		assert.Same(t, tc.expected, g, tc.path)
		assert.NotNil(t, g.Language(), tc.path)
	}
}

func TestForName(t *testing.T) {
	g, err := ForName("Java")
	assert.NoError(t, err)
	assert.Same(t, Java, g)
	_, err = ForName("cobol")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestGrammar_Lookup(t *testing.T) {
	call, ok := Java.Call("method_invocation")
	assert.True(t, ok)
	assert.Equal(t, "object", call.Receiver)
	_, ok = Java.Call("call_expression")
	assert.False(t, ok)
	assert.True(t, Go.IsList("expression_list"))
	assert.False(t, Java.IsList("expression_list"))
	assert.True(t, Python.IsIdentifier("identifier"))
}
