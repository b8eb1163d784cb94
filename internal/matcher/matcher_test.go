package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/hirepilot/internal/types"
)

// fakeClient returns a canned response or error for every call.
type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) EmbedText(context.Context, string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClient) Close() error { return nil }

const validProfileJSON = `{
	"name": "Grace Hopper",
	"email": "grace@example.com",
	"phone": "555-0100",
	"position": "Backend Engineer",
	"location": "Remote",
	"resumeMatch": 88,
	"experience": "10 years",
	"linkedin": "N/A",
	"github": "N/A",
	"portfolio": "N/A",
	"summary": "Compiler pioneer.",
	"skills": ["cobol", "compilers"],
	"workExperience": [{"company": "Navy", "position": "Rear Admiral", "duration": "many years", "description": "Invented the compiler."}],
	"education": [{"degree": "PhD", "school": "Yale", "year": "1934"}]
}`

func TestMatchResume_Success(t *testing.T) {
	client := &fakeClient{response: validProfileJSON}
	m := New(client, nil)

	profile := m.MatchResume(context.Background(), "resume text", []string{"go", "5 year"})

	require.Empty(t, profile.Error)
	assert.Equal(t, "Grace Hopper", profile.Name)
	assert.Equal(t, 88.0, profile.ResumeMatch)
	assert.Len(t, profile.WorkExperience, 1)
	assert.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "resume text")
	assert.Contains(t, client.prompts[0], "go, 5 year")
}

func TestMatchResume_MarkdownWrappedResponse(t *testing.T) {
	client := &fakeClient{response: "```json\n" + validProfileJSON + "\n```"}
	m := New(client, nil)

	profile := m.MatchResume(context.Background(), "resume text", []string{"go"})

	require.Empty(t, profile.Error)
	assert.Equal(t, 88.0, profile.ResumeMatch)
}

func TestMatchResume_SubstringFallback(t *testing.T) {
	client := &fakeClient{response: "Here you go!\n" + validProfileJSON + "\nLet me know if you need anything else."}
	m := New(client, nil)

	profile := m.MatchResume(context.Background(), "resume text", []string{"go"})

	require.Empty(t, profile.Error)
	assert.Equal(t, "Grace Hopper", profile.Name)
}

func TestMatchResume_ClampsOutOfRangeScore(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     float64
	}{
		{"above range", `{"resumeMatch": 140}`, 100},
		{"below range", `{"resumeMatch": -5}`, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New(&fakeClient{response: tc.response}, nil)

			profile := m.MatchResume(context.Background(), "resume text", []string{"go"})

			require.Empty(t, profile.Error)
			assert.Equal(t, tc.want, profile.ResumeMatch)
		})
	}
}

func TestMatchResume_FillsMissingFields(t *testing.T) {
	m := New(&fakeClient{response: `{"resumeMatch": 50}`}, nil)

	profile := m.MatchResume(context.Background(), "resume text", []string{"go"})

	assert.Equal(t, types.NotAvailable, profile.Name)
	assert.Equal(t, types.NotAvailable, profile.Email)
	assert.Equal(t, types.NotAvailable, profile.Summary)
	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.WorkExperience)
	assert.NotNil(t, profile.Education)
}

func TestMatchResume_EmptyResumeText(t *testing.T) {
	m := New(&fakeClient{response: validProfileJSON}, nil)

	profile := m.MatchResume(context.Background(), "   ", []string{"go"})

	assert.Zero(t, profile.ResumeMatch)
	assert.NotEmpty(t, profile.Error)
	assert.Equal(t, types.NotAvailable, profile.Name)
}

func TestMatchResume_EmptyRequirements(t *testing.T) {
	m := New(&fakeClient{response: validProfileJSON}, nil)

	profile := m.MatchResume(context.Background(), "resume text", nil)

	assert.Zero(t, profile.ResumeMatch)
	assert.NotEmpty(t, profile.Error)
}

func TestMatchResume_GenerationError(t *testing.T) {
	m := New(&fakeClient{err: errors.New("service unavailable")}, nil)

	profile := m.MatchResume(context.Background(), "resume text", []string{"go"})

	assert.Zero(t, profile.ResumeMatch)
	assert.Contains(t, profile.Error, "service unavailable")
}

func TestMatchResume_UnparsableResponse(t *testing.T) {
	m := New(&fakeClient{response: "I am sorry, I cannot help with that."}, nil)

	profile := m.MatchResume(context.Background(), "resume text", []string{"go"})

	assert.Zero(t, profile.ResumeMatch)
	assert.NotEmpty(t, profile.Error)
}

func TestMatchResume_SchemaViolation(t *testing.T) {
	// resumeMatch as a string fails shape validation.
	m := New(&fakeClient{response: `{"resumeMatch": "eighty"}`}, nil)

	profile := m.MatchResume(context.Background(), "resume text", []string{"go"})

	assert.Zero(t, profile.ResumeMatch)
	assert.Contains(t, profile.Error, "invalid model output")
}
