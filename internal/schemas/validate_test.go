package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfileJSON_Valid(t *testing.T) {
	raw := []byte(`{
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"resumeMatch": 87,
		"skills": ["python", "mathematics"],
		"workExperience": [{"company": "Analytical Engines", "position": "Programmer", "duration": "2y", "description": "Wrote the first program."}],
		"education": [{"degree": "N/A", "school": "N/A", "year": "N/A"}]
	}`)

	assert.NoError(t, ValidateProfileJSON(raw))
}

func TestValidateProfileJSON_MissingResumeMatch(t *testing.T) {
	raw := []byte(`{"name": "Ada"}`)

	err := ValidateProfileJSON(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resumeMatch")
}

func TestValidateProfileJSON_WrongTypes(t *testing.T) {
	raw := []byte(`{"resumeMatch": "eighty"}`)

	err := ValidateProfileJSON(raw)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
}

func TestValidateProfile_GoDocument(t *testing.T) {
	doc := map[string]any{
		"resumeMatch": 42.5,
		"skills":      []any{"go", "postgresql"},
	}

	assert.NoError(t, ValidateProfile(doc))
}

func TestValidateProfile_RejectsNonObject(t *testing.T) {
	err := ValidateProfile([]any{"not", "an", "object"})

	require.Error(t, err)
}
