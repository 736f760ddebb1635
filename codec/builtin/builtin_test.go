package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semreg/codec"
)

type document struct {
	Title string   `json:"title" yaml:"title"`
	Tags  []string `json:"tags" yaml:"tags"`
}

func TestBuiltinCodecsRegistered(t *testing.T) {
	names := codec.Names()
	assert.Contains(t, names, "json")
	assert.Contains(t, names, "yaml")

	j, ok := codec.Lookup("json")
	require.True(t, ok)
	assert.Equal(t, "application/json", j.ContentType())

	y, ok := codec.Lookup("yaml")
	require.True(t, ok)
	assert.Equal(t, "application/yaml", y.ContentType())
}

func TestRoundTrip(t *testing.T) {
	doc := document{Title: "release notes", Tags: []string{"a", "b"}}

	for _, name := range []string{"json", "yaml"} {
		t.Run(name, func(t *testing.T) {
			data, err := codec.Encode(name, doc)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			var got document
			require.NoError(t, codec.Decode(name, data, &got))
			assert.Equal(t, doc, got)
		})
	}
}
