package items

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	ierrors "github.com/achievelist/achievelist/internal/errors"
)

// FieldError names a single failing payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates the payload fields that failed validation.
// It matches ierrors.ErrInvalid via errors.Is so the transport boundary can
// map it to a 400 without importing this package's internals.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Is reports whether this error matches ierrors.ErrInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ierrors.ErrInvalid
}

// createPayload mirrors the accepted creation body. Pointer fields
// distinguish "absent" from "zero value"; unknown fields are discarded, so a
// client-supplied owner or timestamp never reaches the service.
type createPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ParseCreate decodes and validates a creation payload.
//
// Rules: name required, non-empty text; description optional text;
// completed optional boolean. Violations return a ValidationError naming
// every failing field.
func ParseCreate(body []byte) (*CreateDraft, error) {
	var payload createPayload
	if err := decode(body, &payload); err != nil {
		return nil, err
	}

	var fields []FieldError
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "required, must be non-empty text"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	draft := &CreateDraft{
		Name:      *payload.Name,
		Completed: payload.Completed,
	}
	if payload.Description != nil {
		draft.Description = *payload.Description
	}
	return draft, nil
}

// ParseUpdate decodes and validates a partial-update payload.
//
// All fields are optional; an empty object is a valid no-op update. Fields
// present with the wrong JSON type return a ValidationError.
func ParseUpdate(body []byte) (*UpdateDraft, error) {
	var payload createPayload
	if err := decode(body, &payload); err != nil {
		return nil, err
	}

	return &UpdateDraft{
		Name:        payload.Name,
		Description: payload.Description,
		Completed:   payload.Completed,
	}, nil
}

// RequireID validates the id addressing parameter for update and delete.
// Format checking beyond presence is left to the repository, which treats an
// unparseable identifier as a zero-affected outcome.
func RequireID(id string) error {
	if id == "" {
		return &ValidationError{Fields: []FieldError{
			{Field: "id", Message: "required query parameter"},
		}}
	}
	return nil
}

// decode unmarshals a JSON body, converting decode failures into
// ValidationErrors that name the offending field where possible.
func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{Fields: []FieldError{
				{Field: typeErr.Field, Message: fmt.Sprintf("must be of type %s", typeErr.Type)},
			}}
		}
		return &ValidationError{Fields: []FieldError{
			{Field: "body", Message: "malformed JSON"},
		}}
	}
	return nil
}
