package matcher

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/martin/hirepilot/internal/llm"
	"github.com/martin/hirepilot/internal/types"
)

// ScoreTranscript evaluates an interview transcript and returns a technical
// score in [0,100] with feedback bullet points. Failures degrade to a zero
// score with the error described in the feedback; the call never fails.
func (m *Matcher) ScoreTranscript(ctx context.Context, transcript string) types.TranscriptEvaluation {
	if strings.TrimSpace(transcript) == "" {
		return fallbackEvaluation("transcript is empty")
	}

	response, err := m.client.GenerateContent(ctx, buildTranscriptPrompt(transcript))
	if err != nil {
		m.log.Warn("transcript scoring generation failed", zap.Error(err))
		return fallbackEvaluation("generation failed: " + err.Error())
	}

	var eval types.TranscriptEvaluation
	outcome, err := llm.UnmarshalLenient(response, &eval)
	if outcome == llm.ParsedFailed {
		m.log.Warn("transcript scoring response unparsable", zap.Error(err))
		return fallbackEvaluation("unparsable model output: " + err.Error())
	}

	eval.Score = clamp(eval.Score, 0, 100)
	if eval.Feedback == nil {
		eval.Feedback = []string{}
	}
	return eval
}

func fallbackEvaluation(errDesc string) types.TranscriptEvaluation {
	return types.TranscriptEvaluation{
		Score:    0,
		Feedback: []string{"Error occurred while processing: " + errDesc},
	}
}
