package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Parsing Tests
// ==========================

func TestParse_ValidCorpus(t *testing.T) {
	raw := []byte(`{
		"version": "1",
		"documents": [
			{"text": "hello there", "label": "greeting"},
			{"text": "bye for now", "label": "goodbye"}
		]
	}`)

	c, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "1", c.Version)
	require.Len(t, c.Documents, 2)
	assert.Equal(t, "hello there", c.Documents[0].Text)
	assert.Equal(t, "greeting", c.Documents[0].Label)
}

func TestParse_RejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "missing version",
			raw:  `{"documents":[{"text":"a","label":"greeting"},{"text":"b","label":"goodbye"}]}`,
		},
		{
			name: "too few documents",
			raw:  `{"version":"1","documents":[{"text":"a","label":"greeting"}]}`,
		},
		{
			name: "document missing label",
			raw:  `{"version":"1","documents":[{"text":"a"},{"text":"b","label":"goodbye"}]}`,
		},
		{
			name: "extra top-level field",
			raw:  `{"version":"1","weights":{},"documents":[{"text":"a","label":"greeting"},{"text":"b","label":"goodbye"}]}`,
		},
		{
			name: "extra document field",
			raw:  `{"version":"1","documents":[{"text":"a","label":"greeting","weight":2},{"text":"b","label":"goodbye"}]}`,
		},
		{
			name: "empty text",
			raw:  `{"version":"1","documents":[{"text":"","label":"greeting"},{"text":"b","label":"goodbye"}]}`,
		},
		{
			name: "not json",
			raw:  `{nope`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

// ==========================
// File Loading Tests
// ==========================

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "1",
		"documents": [
			{"text": "hello there", "label": "greeting"},
			{"text": "bye for now", "label": "goodbye"}
		]
	}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Documents, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
