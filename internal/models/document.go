package models

// ResumeDocument is the text extracted from an uploaded résumé.
// It is never stored; it lives for one request.
type ResumeDocument struct {
	FileName  string `json:"fileName"`
	Text      string `json:"resumeText"`
	PageCount int    `json:"pageCount"`
}
