// Package matcher scores raw resume text against job requirements through a
// generative model and extracts a structured candidate profile. Every entry
// point returns a well-formed record: failures degrade to sentinel-filled
// fallbacks instead of propagating, so every submitted application stays
// rankable.
package matcher

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/martin/hirepilot/internal/llm"
	"github.com/martin/hirepilot/internal/schemas"
	"github.com/martin/hirepilot/internal/types"
)

// Matcher delegates semantic judgment to the model client.
type Matcher struct {
	client llm.Client
	log    *zap.Logger
}

// New creates a Matcher.
func New(client llm.Client, log *zap.Logger) *Matcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{client: client, log: log}
}

// MatchResume scores resumeText against the requirement list and extracts
// the candidate's profile. The returned profile always has ResumeMatch in
// [0,100]; on any failure it is the fallback record with ResumeMatch = 0 and
// a non-empty Error field.
func (m *Matcher) MatchResume(ctx context.Context, resumeText string, requirements []string) *types.CandidateProfile {
	if strings.TrimSpace(resumeText) == "" {
		return types.FallbackProfile("resume text is empty")
	}
	if len(requirements) == 0 {
		return types.FallbackProfile("requirement list is empty")
	}

	prompt := buildResumeMatchPrompt(resumeText, requirements)
	response, err := m.client.GenerateContent(ctx, prompt)
	if err != nil {
		m.log.Warn("resume match generation failed", zap.Error(err))
		return types.FallbackProfile("generation failed: " + err.Error())
	}
	if strings.TrimSpace(response) == "" {
		m.log.Warn("resume match returned empty response")
		return types.FallbackProfile("empty response from model")
	}

	var doc map[string]any
	outcome, err := llm.UnmarshalLenient(response, &doc)
	if outcome == llm.ParsedFailed {
		m.log.Warn("resume match response unparsable",
			zap.String("parse", outcome.String()),
			zap.Error(err))
		return types.FallbackProfile("unparsable model output: " + err.Error())
	}
	if outcome == llm.ParsedFallback {
		m.log.Debug("resume match parsed via substring fallback")
	}

	if err := schemas.ValidateProfile(doc); err != nil {
		m.log.Warn("resume match response failed schema validation", zap.Error(err))
		return types.FallbackProfile("invalid model output: " + err.Error())
	}

	profile, err := decodeProfile(doc)
	if err != nil {
		m.log.Warn("resume match response undecodable", zap.Error(err))
		return types.FallbackProfile("undecodable model output: " + err.Error())
	}

	profile.ResumeMatch = clamp(profile.ResumeMatch, 0, 100)
	fillMissing(profile)
	return profile
}

// decodeProfile converts the schema-validated document into the typed
// profile.
func decodeProfile(doc map[string]any) (*types.CandidateProfile, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var profile types.CandidateProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// fillMissing pads absent fields with the not-available sentinel so callers
// never see partially blank records.
func fillMissing(p *types.CandidateProfile) {
	fields := []*string{
		&p.Name, &p.Email, &p.Phone, &p.Position, &p.Location,
		&p.Experience, &p.LinkedIn, &p.GitHub, &p.Portfolio, &p.Summary,
	}
	for _, f := range fields {
		if strings.TrimSpace(*f) == "" {
			*f = types.NotAvailable
		}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.WorkExperience == nil {
		p.WorkExperience = []types.WorkExperience{}
	}
	if p.Education == nil {
		p.Education = []types.Education{}
	}
}

// clamp bounds v to [lo, hi]. Models can return out-of-range values.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
