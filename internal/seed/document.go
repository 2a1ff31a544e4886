package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"car-catalog-api/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var documentSchema []byte

// Document is the seed file layout: {"cars": [...]}
type Document struct {
	Cars []Entry `json:"cars"`
}

// Entry is one car of the seed file. ID is read but never stored.
type Entry struct {
	ID *int64 `json:"id,omitempty"`
	models.CreateCarRequest
}

// ValidationError lists every schema violation of a seed document
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("seed document %s is invalid: %s", e.Path, strings.Join(e.Errors, "; "))
}

// LoadDocument reads and validates the seed file at path
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed document: %w", err)
	}

	return ParseDocument(path, data)
}

// ParseDocument validates data against the seed schema and decodes it.
// name is only used in error messages.
func ParseDocument(name string, data []byte) (*Document, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed document %s: %w", name, err)
	}

	if !result.Valid() {
		validationErr := &ValidationError{Path: name}
		for _, desc := range result.Errors() {
			validationErr.Errors = append(validationErr.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return nil, validationErr
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed document %s: %w", name, err)
	}

	return &doc, nil
}
