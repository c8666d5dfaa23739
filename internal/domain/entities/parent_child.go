package entities

import (
	"strings"
	"time"
)

// LinkType classifies a parent-child relationship.
type LinkType string

const (
	LinkBiological LinkType = "biological"
	LinkAdopted    LinkType = "adopted"
	LinkFoster     LinkType = "foster"
	LinkStep       LinkType = "step"
)

// ParseLinkType validates and converts a string to LinkType.
// An empty string defaults to biological.
func ParseLinkType(s string) (LinkType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "biological", "":
		return LinkBiological, true
	case "adopted":
		return LinkAdopted, true
	case "foster":
		return LinkFoster, true
	case "step":
		return LinkStep, true
	default:
		return "", false
	}
}

// MaxBiologicalParents is the cap on biological parent links per child.
// Enforced by services and prediction rules, not by the database.
const MaxBiologicalParents = 2

// ParentChildLink represents a directed parent-to-child relationship.
// ParentName and ChildName are annotations filled in by store queries
// for explanation text; they are not persisted columns of the link.
type ParentChildLink struct {
	ID         string    `json:"id"`
	ParentID   string    `json:"parent_id"`
	ChildID    string    `json:"child_id"`
	Type       LinkType  `json:"type"`
	Deleted    bool      `json:"deleted,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ParentName string    `json:"parent_name,omitempty"`
	ChildName  string    `json:"child_name,omitempty"`
}
