package models

type GenerateRequest struct {
	ResumeText *string `json:"resumeText"`
}

type GenerateResponse struct {
	Questions string `json:"questions"`
}

type ScoreRequest struct {
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
}

type ScoreResponse struct {
	Scores   []float64 `json:"scores"`
	Feedback []string  `json:"feedback"`
}

type ReportRequest struct {
	Questions []string  `json:"questions"`
	Answers   []string  `json:"answers"`
	Scores    []float64 `json:"scores"`
	Feedback  []string  `json:"feedback"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
