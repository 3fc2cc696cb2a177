// Package wizard holds the state of one interview practice run: choose a
// résumé, generate questions, answer them and get them scored.
package wizard

import (
	"errors"
	"fmt"
	"sync"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/services"
)

type Step int

const (
	StepUpload Step = iota + 1
	StepReady
	StepGenerating
	StepAnswering
	StepReviewed
)

func (s Step) String() string {
	switch s {
	case StepUpload:
		return "Upload Resume"
	case StepReady:
		return "Generate Questions"
	case StepGenerating:
		return "Generating"
	case StepAnswering:
		return "Answer Questions"
	case StepReviewed:
		return "Get Feedback"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

const (
	MsgInvalidFile      = "Please select a valid PDF file"
	MsgNoFile           = "❗ Please upload a resume PDF"
	MsgGenerateFailed   = "❌ Failed to generate questions. Please check the server or API key."
	MsgEvaluationFailed = "❌ Failed to evaluate answers."
)

var (
	ErrBusy          = errors.New("a request is already in progress")
	ErrNoFile        = errors.New("no resume selected")
	ErrInvalidFile   = errors.New("unsupported resume file")
	ErrNoAnswers     = errors.New("no answers to evaluate")
	ErrQuestionIndex = errors.New("question index out of range")
)

// Backend is what the wizard needs from the server.
type Backend interface {
	Extract(filePath string) (*models.ResumeDocument, error)
	Generate(resumeText string) (string, error)
	Score(questions, answers []string) (*models.ScoreResponse, error)
}

// Session is safe for concurrent use. At most one Generate or Evaluate call
// runs at a time; a second one fails with ErrBusy.
type Session struct {
	backend Backend

	mu        sync.Mutex
	step      Step
	filePath  string
	questions []string
	answers   models.AnswerSheet
	scores    []float64
	feedback  []string
	message   string
	loading   bool
}

func NewSession(backend Backend) *Session {
	return &Session{
		backend: backend,
		step:    StepUpload,
		answers: models.AnswerSheet{},
	}
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Message is the last user-facing error, or "".
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) FilePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filePath
}

func (s *Session) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questions...)
}

func (s *Session) Answer(index int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Get(index)
}

// Results returns the scores and feedback of the last evaluation.
func (s *Session) Results() ([]float64, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.scores...), append([]string(nil), s.feedback...)
}

// ChooseFile selects the résumé. An unsupported file only sets the message;
// a supported one resets questions, answers and results and moves to StepReady.
func (s *Session) ChooseFile(filePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if filePath == "" || !services.IsSupportedResume(filePath) {
		s.message = MsgInvalidFile
		return ErrInvalidFile
	}

	s.filePath = filePath
	s.questions = nil
	s.answers = models.AnswerSheet{}
	s.scores = nil
	s.feedback = nil
	s.message = ""
	s.step = StepReady
	return nil
}

// GenerateQuestions extracts the résumé text and asks the server for
// questions. On failure the session goes back to StepReady.
func (s *Session) GenerateQuestions() error {
	s.mu.Lock()
	if s.filePath == "" {
		s.message = MsgNoFile
		s.mu.Unlock()
		return ErrNoFile
	}
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}

	s.loading = true
	s.message = ""
	s.questions = nil
	s.step = StepGenerating
	filePath := s.filePath
	s.mu.Unlock()

	questions, err := s.generate(filePath)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.message = MsgGenerateFailed
		s.step = StepReady
		return err
	}

	s.questions = questions
	s.step = StepAnswering
	return nil
}

func (s *Session) generate(filePath string) ([]string, error) {
	doc, err := s.backend.Extract(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume: %w", err)
	}

	raw, err := s.backend.Generate(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	return models.SplitQuestions(raw), nil
}

func (s *Session) SetAnswer(index int, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("%w: %d", ErrQuestionIndex, index)
	}

	s.answers.Set(index, answer)
	return nil
}

// CanEvaluate reports whether at least one answer has been given.
func (s *Session) CanEvaluate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers) > 0
}

// Evaluate sends the questions and the given answers, in question order, for
// scoring. A sparse answer sheet sends fewer answers than questions, which
// the server rejects. On failure the step is left unchanged.
func (s *Session) Evaluate() error {
	s.mu.Lock()
	if len(s.answers) == 0 {
		s.mu.Unlock()
		return ErrNoAnswers
	}
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}

	s.loading = true
	questions := append([]string(nil), s.questions...)
	answers := s.answers.Values()
	s.mu.Unlock()

	resp, err := s.backend.Score(questions, answers)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.message = MsgEvaluationFailed
		return fmt.Errorf("failed to evaluate answers: %w", err)
	}

	s.scores = resp.Scores
	s.feedback = resp.Feedback
	s.step = StepReviewed
	return nil
}

// ReportRequest collects the session into the payload of the report endpoint.
// Answers are aligned by question index, unanswered ones left empty.
func (s *Session) ReportRequest() models.ReportRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make([]string, len(s.questions))
	for i := range s.questions {
		answers[i] = s.answers.Get(i)
	}

	return models.ReportRequest{
		Questions: append([]string(nil), s.questions...),
		Answers:   answers,
		Scores:    append([]float64(nil), s.scores...),
		Feedback:  append([]string(nil), s.feedback...),
	}
}

// ReportRows renders the session as report rows without a server round trip.
func (s *Session) ReportRows() []services.ReportRow {
	req := s.ReportRequest()
	return services.BuildReportRows(req.Questions, req.Answers, req.Scores, req.Feedback)
}
