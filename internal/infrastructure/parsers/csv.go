package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser parses people (and their parent refs) from CSV format.
// Unions cannot be expressed in CSV; use the JSON format for those.
type CSVParser struct{}

// Parse reads CSV from the reader and returns a parsed document.
// Expected columns: ref, name, arabic_name, sex, birth_date,
// family_group, father_ref, mother_ref.
func (p *CSVParser) Parse(r io.Reader) (*Document, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	requiredCols := []string{"ref", "name"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows into a document, deriving biological
// parent links from the father_ref and mother_ref columns.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) (*Document, error) {
	doc := &Document{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		person := RawPerson{
			Ref:         getColumn(record, colIndex, "ref"),
			Name:        getColumn(record, colIndex, "name"),
			ArabicName:  getColumn(record, colIndex, "arabic_name"),
			Sex:         getColumn(record, colIndex, "sex"),
			BirthDate:   getColumn(record, colIndex, "birth_date"),
			FamilyGroup: getColumn(record, colIndex, "family_group"),
			LineNum:     lineNum,
		}
		if person.Ref == "" {
			return nil, fmt.Errorf("line %d: missing ref", lineNum)
		}
		doc.People = append(doc.People, person)

		for _, col := range []string{"father_ref", "mother_ref"} {
			if parentRef := getColumn(record, colIndex, col); parentRef != "" {
				doc.Links = append(doc.Links, RawLink{
					ParentRef: parentRef,
					ChildRef:  person.Ref,
					Type:      "biological",
					LineNum:   lineNum,
				})
			}
		}
	}

	return doc, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
