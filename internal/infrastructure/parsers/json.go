package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses a full import document from JSON format.
type JSONParser struct{}

// Parse reads JSON from the reader and returns the parsed document.
func (p *JSONParser) Parse(r io.Reader) (*Document, error) {
	var doc Document

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range doc.People {
		doc.People[i].LineNum = i + 1
	}
	for i := range doc.Links {
		doc.Links[i].LineNum = i + 1
	}
	for i := range doc.Unions {
		doc.Unions[i].LineNum = i + 1
	}

	return &doc, nil
}
