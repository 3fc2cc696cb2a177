package services

import "fmt"

const (
	QuestionSystemPrompt = "Generate 5 unique and specific interview questions based on the resume text below. Return each question in a new line only."

	ScoreSystemPrompt = "Return ONLY valid JSON:\n{\"score\": 8, \"feedback\": \"Your answer was strong and specific.\"}"
)

// BuildScoreUserPrompt embeds one question/answer pair for scoring.
func BuildScoreUserPrompt(question, answer string) string {
	return fmt.Sprintf("Question: %s\nAnswer: %s", question, answer)
}
