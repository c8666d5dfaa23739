package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
	"github.com/Virtualupon/FamilyTree-sub012/internal/infrastructure/parsers"
)

// importDateLayout is the date format accepted in import files.
const importDateLayout = "2006-01-02"

// ImportError represents an error for a specific record during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	People int
	Links  int
	Unions int
	Errors []ImportError
}

// ImportService bulk-loads parsed people, links, and unions into a
// tree. Invalid records are collected as errors and skipped; the rest
// of the document still imports.
type ImportService struct {
	store ports.FamilyStore
}

// NewImportService creates a new import service.
func NewImportService(store ports.FamilyStore) *ImportService {
	return &ImportService{store: store}
}

// Import loads a parsed document into the tree. People are created
// first so that links and unions can resolve file-local refs.
func (s *ImportService) Import(ctx context.Context, treeID string, doc *parsers.Document) (*ImportResult, error) {
	tree, err := s.store.FindTreeByID(ctx, treeID)
	if err != nil {
		return nil, fmt.Errorf("finding tree: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("tree not found: %s", treeID)
	}

	result := &ImportResult{}
	idByRef := make(map[string]string, len(doc.People))

	for _, raw := range doc.People {
		person, importErr := s.buildPerson(treeID, raw)
		if importErr != nil {
			result.Errors = append(result.Errors, *importErr)
			continue
		}
		if _, exists := idByRef[raw.Ref]; exists {
			result.Errors = append(result.Errors, ImportError{
				Line: raw.LineNum, Field: "ref", Value: raw.Ref,
				Message: fmt.Sprintf("duplicate ref %q", raw.Ref),
			})
			continue
		}
		if err := s.store.SavePerson(ctx, person); err != nil {
			return nil, fmt.Errorf("saving person: %w", err)
		}
		idByRef[raw.Ref] = person.ID
		result.People++
	}

	for _, raw := range doc.Links {
		if importErr := s.importLink(ctx, idByRef, raw); importErr != nil {
			result.Errors = append(result.Errors, *importErr)
			continue
		}
		result.Links++
	}

	for _, raw := range doc.Unions {
		if importErr := s.importUnion(ctx, treeID, idByRef, raw); importErr != nil {
			result.Errors = append(result.Errors, *importErr)
			continue
		}
		result.Unions++
	}

	return result, nil
}

func (s *ImportService) buildPerson(treeID string, raw parsers.RawPerson) (*entities.Person, *ImportError) {
	if raw.Name == "" {
		return nil, &ImportError{Line: raw.LineNum, Field: "name", Message: "missing name"}
	}

	sex, ok := entities.ParseSex(raw.Sex)
	if !ok {
		return nil, &ImportError{
			Line: raw.LineNum, Field: "sex", Value: raw.Sex,
			Message: fmt.Sprintf("invalid sex %q", raw.Sex),
		}
	}

	var birthDate *time.Time
	if raw.BirthDate != "" {
		parsed, err := time.Parse(importDateLayout, raw.BirthDate)
		if err != nil {
			return nil, &ImportError{
				Line: raw.LineNum, Field: "birth_date", Value: raw.BirthDate,
				Message: fmt.Sprintf("invalid birth date %q (want YYYY-MM-DD)", raw.BirthDate),
			}
		}
		birthDate = &parsed
	}

	return &entities.Person{
		ID:            uuid.New().String(),
		TreeID:        treeID,
		Name:          raw.Name,
		ArabicName:    raw.ArabicName,
		Sex:           sex,
		BirthDate:     birthDate,
		FamilyGroupID: raw.FamilyGroup,
		CreatedAt:     time.Now(),
	}, nil
}

func (s *ImportService) importLink(ctx context.Context, idByRef map[string]string, raw parsers.RawLink) *ImportError {
	parentID, ok := idByRef[raw.ParentRef]
	if !ok {
		return &ImportError{
			Line: raw.LineNum, Field: "parent_ref", Value: raw.ParentRef,
			Message: fmt.Sprintf("unknown ref %q", raw.ParentRef),
		}
	}
	childID, ok := idByRef[raw.ChildRef]
	if !ok {
		return &ImportError{
			Line: raw.LineNum, Field: "child_ref", Value: raw.ChildRef,
			Message: fmt.Sprintf("unknown ref %q", raw.ChildRef),
		}
	}

	linkType, ok := entities.ParseLinkType(raw.Type)
	if !ok {
		return &ImportError{
			Line: raw.LineNum, Field: "type", Value: raw.Type,
			Message: fmt.Sprintf("invalid link type %q", raw.Type),
		}
	}

	if linkType == entities.LinkBiological {
		count, err := s.store.CountBiologicalParents(ctx, childID)
		if err != nil {
			return &ImportError{Line: raw.LineNum, Message: err.Error()}
		}
		if count >= entities.MaxBiologicalParents {
			return &ImportError{
				Line: raw.LineNum, Field: "child_ref", Value: raw.ChildRef,
				Message: fmt.Sprintf("%q already has %d biological parents", raw.ChildRef, count),
			}
		}
	}

	link := &entities.ParentChildLink{
		ID:        uuid.New().String(),
		ParentID:  parentID,
		ChildID:   childID,
		Type:      linkType,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveParentLink(ctx, link); err != nil {
		return &ImportError{Line: raw.LineNum, Message: err.Error()}
	}
	return nil
}

func (s *ImportService) importUnion(ctx context.Context, treeID string, idByRef map[string]string, raw parsers.RawUnion) *ImportError {
	if len(raw.MemberRefs) < 2 {
		return &ImportError{
			Line: raw.LineNum, Field: "member_refs",
			Message: fmt.Sprintf("a union requires at least 2 members, got %d", len(raw.MemberRefs)),
		}
	}

	memberIDs := make([]string, 0, len(raw.MemberRefs))
	for _, ref := range raw.MemberRefs {
		id, ok := idByRef[ref]
		if !ok {
			return &ImportError{
				Line: raw.LineNum, Field: "member_refs", Value: ref,
				Message: fmt.Sprintf("unknown ref %q", ref),
			}
		}
		memberIDs = append(memberIDs, id)
	}

	start, importErr := parseOptionalDate(raw.StartDate, "start_date", raw.LineNum)
	if importErr != nil {
		return importErr
	}
	end, importErr := parseOptionalDate(raw.EndDate, "end_date", raw.LineNum)
	if importErr != nil {
		return importErr
	}

	union := &entities.Union{
		ID:        uuid.New().String(),
		TreeID:    treeID,
		StartDate: start,
		EndDate:   end,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveUnion(ctx, union); err != nil {
		return &ImportError{Line: raw.LineNum, Message: err.Error()}
	}
	for _, memberID := range memberIDs {
		if err := s.store.AddUnionMember(ctx, union.ID, memberID); err != nil {
			return &ImportError{Line: raw.LineNum, Message: err.Error()}
		}
	}
	return nil
}

func parseOptionalDate(value, field string, line int) (*time.Time, *ImportError) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(importDateLayout, value)
	if err != nil {
		return nil, &ImportError{
			Line: line, Field: field, Value: value,
			Message: fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", value),
		}
	}
	return &parsed, nil
}
