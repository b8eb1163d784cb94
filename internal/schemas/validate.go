// Package schemas validates structured documents produced by the model and
// submitted by clients. Intake payloads are never evaluated as code; they
// are parsed as JSON and checked against a schema before use.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// candidateProfileSchema is the shape contract for matcher output and for
// the resume_detail intake payload. Only resumeMatch is structurally
// required; every other field degrades to a sentinel downstream.
const candidateProfileSchema = `{
  "type": "object",
  "required": ["resumeMatch"],
  "properties": {
    "name": {"type": "string"},
    "email": {"type": "string"},
    "phone": {"type": "string"},
    "position": {"type": "string"},
    "location": {"type": "string"},
    "resumeMatch": {"type": "number"},
    "experience": {"type": "string"},
    "linkedin": {"type": "string"},
    "github": {"type": "string"},
    "portfolio": {"type": "string"},
    "summary": {"type": "string"},
    "skills": {"type": "array", "items": {"type": "string"}},
    "workExperience": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "company": {"type": "string"},
          "position": {"type": "string"},
          "duration": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "degree": {"type": "string"},
          "school": {"type": "string"},
          "year": {"type": "string"}
        }
      }
    }
  }
}`

var profileSchema = gojsonschema.NewStringLoader(candidateProfileSchema)

// ValidationError aggregates the field-level schema violations.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %s", strings.Join(e.Errors, "; "))
}

// ValidateProfile checks a decoded candidate profile document against the
// profile schema.
func ValidateProfile(doc any) error {
	result, err := gojsonschema.Validate(profileSchema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return verr
}

// ValidateProfileJSON checks a raw JSON payload against the profile schema.
// Used by the intake path for client-supplied resume_detail documents.
func ValidateProfileJSON(raw []byte) error {
	result, err := gojsonschema.Validate(profileSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return verr
}
