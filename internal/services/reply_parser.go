package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"alfredoptarigan/interview-prep/internal/models"
)

const patternFallbackScore = 5

var (
	scorePattern    = regexp.MustCompile(`(?i)score\s*[:\-]?\s*(\d{1,2})`)
	feedbackPattern = regexp.MustCompile(`(?i)feedback\s*[:\-]?\s*(.+)`)
)

// ParseScoreReply turns a scoring reply into a score and feedback.
//
// A reply that decodes as JSON is taken as structured: a numeric "score" and a
// string "feedback" override the initial 0 and DefaultFeedback, anything else
// leaves them alone. Any other reply, JSON null included, is scanned for
// "score: N" and "feedback: text"; a missing score becomes 5.
func ParseScoreReply(reply string) models.AnswerEvaluation {
	reply = strings.TrimSpace(reply)

	var parsed any
	if err := json.Unmarshal([]byte(reply), &parsed); err == nil && parsed != nil {
		result := models.AnswerEvaluation{
			Score:    0,
			Feedback: models.DefaultFeedback,
			Outcome:  models.OutcomeStructured,
		}

		if fields, ok := parsed.(map[string]any); ok {
			if score, ok := fields["score"].(float64); ok {
				result.Score = score
			}
			if feedback, ok := fields["feedback"].(string); ok {
				result.Feedback = feedback
			}
		}

		return result
	}

	return parseByPattern(reply)
}

func parseByPattern(reply string) models.AnswerEvaluation {
	result := models.AnswerEvaluation{
		Score:    patternFallbackScore,
		Feedback: models.DefaultFeedback,
		Outcome:  models.OutcomePattern,
	}

	if m := scorePattern.FindStringSubmatch(reply); m != nil {
		// At most two ASCII digits, Atoi cannot fail.
		score, _ := strconv.Atoi(m[1])
		result.Score = float64(score)
	}

	if m := feedbackPattern.FindStringSubmatch(reply); m != nil {
		result.Feedback = strings.TrimSpace(m[1])
	}

	return result
}

// CallFailureEvaluation is assigned when the upstream call itself fails.
func CallFailureEvaluation() models.AnswerEvaluation {
	return models.AnswerEvaluation{
		Score:    0,
		Feedback: models.DefaultFeedback,
		Outcome:  models.OutcomeCallFailure,
	}
}
