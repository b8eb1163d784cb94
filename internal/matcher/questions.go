package matcher

import (
	"context"

	"go.uber.org/zap"

	"github.com/martin/hirepilot/internal/llm"
	"github.com/martin/hirepilot/internal/types"
)

// GenerateQuestions produces five technical question-answer pairs for the
// given skill labels. On failure a single sentinel pair carrying the error
// description is returned.
func (m *Matcher) GenerateQuestions(ctx context.Context, topics []string) []types.QuestionAnswer {
	if len(topics) == 0 {
		return fallbackQuestions("topic list is empty")
	}

	response, err := m.client.GenerateContent(ctx, buildQuestionsPrompt(topics))
	if err != nil {
		m.log.Warn("question generation failed", zap.Error(err))
		return fallbackQuestions("generation failed: " + err.Error())
	}

	var pairs []types.QuestionAnswer
	outcome, err := llm.UnmarshalLenient(response, &pairs)
	if outcome == llm.ParsedFailed {
		m.log.Warn("question generation response unparsable", zap.Error(err))
		return fallbackQuestions("unparsable model output: " + err.Error())
	}
	if len(pairs) == 0 {
		return fallbackQuestions("model returned no questions")
	}
	return pairs
}

func fallbackQuestions(errDesc string) []types.QuestionAnswer {
	return []types.QuestionAnswer{{
		Question: types.NotAvailable,
		Answer:   "Error occurred: " + errDesc,
	}}
}
