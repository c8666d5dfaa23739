// Package parsers provides parsers for importing family-tree records
// from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawPerson represents a person parsed from an import file before
// validation. Ref is a file-local key used to wire links and unions.
type RawPerson struct {
	Ref         string `json:"ref"`
	Name        string `json:"name"`
	ArabicName  string `json:"arabic_name,omitempty"`
	Sex         string `json:"sex,omitempty"`
	BirthDate   string `json:"birth_date,omitempty"` // YYYY-MM-DD
	FamilyGroup string `json:"family_group,omitempty"`
	LineNum     int    `json:"-"` // Line number in source file (set by parser)
}

// RawLink represents a parent-child link between two file-local refs.
type RawLink struct {
	ParentRef string `json:"parent_ref"`
	ChildRef  string `json:"child_ref"`
	Type      string `json:"type,omitempty"`
	LineNum   int    `json:"-"`
}

// RawUnion represents a union between two or more file-local refs.
type RawUnion struct {
	MemberRefs []string `json:"member_refs"`
	StartDate  string   `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    string   `json:"end_date,omitempty"`   // YYYY-MM-DD
	LineNum    int      `json:"-"`
}

// Document is the full parsed content of an import file.
type Document struct {
	People []RawPerson `json:"people"`
	Links  []RawLink   `json:"links,omitempty"`
	Unions []RawUnion  `json:"unions,omitempty"`
}

// Parser defines the interface for parsing import files.
type Parser interface {
	Parse(r io.Reader) (*Document, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
