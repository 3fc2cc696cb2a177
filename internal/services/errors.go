package services

import "errors"

var (
	// ErrMissingAPIKey is returned before any upstream call when no credential is configured.
	ErrMissingAPIKey = errors.New("llm api key is not configured")
	// ErrLengthMismatch is returned when questions and answers differ in length.
	ErrLengthMismatch = errors.New("questions and answers must be arrays of equal length")
	// ErrEmptyCompletion is returned when the upstream reply carries no choice or no content.
	ErrEmptyCompletion = errors.New("llm returned no completion")
	// ErrUnsupportedFile is returned for résumé files that cannot be read.
	ErrUnsupportedFile = errors.New("unsupported resume file type")
	// ErrEmptyDocument is returned when a résumé yields no text.
	ErrEmptyDocument = errors.New("no text content found in document")
)
