package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/services"
	"github.com/Virtualupon/FamilyTree-sub012/internal/infrastructure/parsers"
)

// ImportHandler handles importing people and relations from files.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format string // "json", "csv", or "auto"
}

// Handle imports people, links, and unions from a file into a tree.
func (h *ImportHandler) Handle(ctx context.Context, treeID, filePath string, opts ImportOptions) (*services.ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	doc, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	return h.service.Import(ctx, treeID, doc)
}
