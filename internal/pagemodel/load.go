package pagemodel

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	foundationerrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
)

//go:embed schema.json
var pagesSchema string

// FieldError is a single schema violation at a document path.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every schema violation found in a pages document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("pages document does not match schema:")
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

type envelope struct {
	Pages []PageInfo `json:"pages"`
}

// LoadPages reads and validates a crawler output file.
func LoadPages(path string) ([]PageInfo, error) {
	// #nosec G304 -- path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryInput, "failed to read pages file").
			WithContext("path", path).
			Build()
	}
	pages, err := DecodePages(data)
	if err != nil {
		if classified, ok := foundationerrors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return pages, nil
}

// DecodePages validates data against the pages schema and decodes it. Both a bare
// JSON array of pages and an object with a "pages" array are accepted.
func DecodePages(data []byte) ([]PageInfo, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryInput, "failed to decode pages").Build()
		}
		return env.Pages, nil
	}

	var pages []PageInfo
	if err := json.Unmarshal(trimmed, &pages); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryInput, "failed to decode pages").Build()
	}
	return pages, nil
}

func validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(pagesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInput, "pages document is not valid JSON").Build()
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return foundationerrors.WrapError(schemaErr, foundationerrors.CategoryValidation, "invalid pages document").Build()
}
