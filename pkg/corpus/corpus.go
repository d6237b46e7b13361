// Package corpus defines the on-disk training corpus format. A corpus
// file is a versioned JSON document set that can seed or replace the
// built-in training data.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is the JSON schema every corpus payload must satisfy.
const Schema = `{
	"type": "object",
	"required": ["version", "documents"],
	"properties": {
		"version": {"type": "string", "minLength": 1},
		"documents": {
			"type": "array",
			"minItems": 2,
			"items": {
				"type": "object",
				"required": ["text", "label"],
				"properties": {
					"text": {"type": "string", "minLength": 1},
					"label": {"type": "string", "minLength": 1}
				},
				"additionalProperties": false
			}
		}
	},
	"additionalProperties": false
}`

// Document is one labeled training utterance.
type Document struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Corpus is a versioned set of labeled training documents.
type Corpus struct {
	Version   string     `json:"version"`
	Documents []Document `json:"documents"`
}

// Validate checks raw JSON against the corpus schema.
func Validate(raw []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(Schema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("corpus schema check failed: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("corpus payload invalid: %v", msgs)
	}
	return nil
}

// Parse validates and decodes a corpus payload.
func Parse(raw []byte) (*Corpus, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var c Corpus
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("corpus decode failed: %w", err)
	}
	return &c, nil
}

// Load reads and parses a corpus file.
func Load(path string) (*Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus file read failed: %w", err)
	}
	return Parse(raw)
}
