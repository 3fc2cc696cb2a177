package models

import (
	"sort"
	"strings"
)

const DefaultFeedback = "⚠️ Default feedback: Please provide a detailed and structured answer."

// ParseOutcome tells which branch produced an AnswerEvaluation.
type ParseOutcome string

const (
	OutcomeStructured  ParseOutcome = "structured"
	OutcomePattern     ParseOutcome = "pattern"
	OutcomeCallFailure ParseOutcome = "call_failure"
)

// AnswerEvaluation is the score and feedback for one question index.
type AnswerEvaluation struct {
	Score    float64
	Feedback string
	Outcome  ParseOutcome
}

// SplitQuestions turns the generator reply into questions: one per line,
// blank lines dropped, the other lines kept as they are.
func SplitQuestions(raw string) []string {
	questions := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		questions = append(questions, line)
	}
	return questions
}

// AnswerSheet holds answers keyed by question index. It may be sparse.
type AnswerSheet map[int]string

func (s AnswerSheet) Set(index int, answer string) {
	s[index] = answer
}

// Get returns the answer for index, or "" when none was given.
func (s AnswerSheet) Get(index int) string {
	return s[index]
}

// Values returns the answers in ascending index order. Unanswered indices are
// skipped, so a sparse sheet yields fewer values than there are questions.
func (s AnswerSheet) Values() []string {
	keys := make([]int, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, s[k])
	}
	return values
}
