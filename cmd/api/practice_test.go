package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/services"
	"alfredoptarigan/interview-prep/internal/wizard"
)

type scriptedBackend struct{}

func (scriptedBackend) Extract(filePath string) (*models.ResumeDocument, error) {
	return &models.ResumeDocument{FileName: filePath, Text: "resume", PageCount: 1}, nil
}

func (scriptedBackend) Generate(string) (string, error) {
	return "Why Go?\nWhy now?", nil
}

func (scriptedBackend) Score(questions, _ []string) (*models.ScoreResponse, error) {
	return &models.ScoreResponse{Scores: []float64{8, 6}, Feedback: []string{"Good.", "Fine."}}, nil
}

func newTestRun(t *testing.T) *practiceRun {
	t.Helper()

	session := wizard.NewSession(scriptedBackend{})
	if err := session.ChooseFile("cv.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &practiceRun{session: session, logger: zap.NewNop(), reportDir: t.TempDir()}
}

func TestMenuItemsFollowSessionStep(t *testing.T) {
	run := newTestRun(t)

	if got := run.menuItems(); !reflect.DeepEqual(got, []string{PromptRegenerate, PromptNewResume, PromptQuit}) {
		t.Fatalf("unexpected menu before questions: %v", got)
	}

	_ = run.session.GenerateQuestions()
	if got := run.menuItems(); got[0] != PromptAnswer || len(got) != 4 {
		t.Fatalf("unexpected menu with questions: %v", got)
	}

	_ = run.session.SetAnswer(0, "Simplicity")
	_ = run.session.SetAnswer(1, "Timing")
	if got := run.menuItems(); got[1] != PromptEvaluate {
		t.Fatalf("expected evaluation to be offered: %v", got)
	}

	_ = run.session.Evaluate()
	if got := run.menuItems(); got[2] != PromptReport {
		t.Fatalf("expected report after review: %v", got)
	}
}

func TestRenderReportLocally(t *testing.T) {
	run := newTestRun(t)
	_ = run.session.GenerateQuestions()
	_ = run.session.SetAnswer(0, "Simplicity")
	_ = run.session.SetAnswer(1, "Timing")
	_ = run.session.Evaluate()

	text, err := run.renderReport("txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(text), "Q1: Why Go?\nAns: Simplicity\nScore: 8\nFeedback: Good.\n") {
		t.Fatalf("unexpected text report %q", text)
	}

	data, err := run.renderReport("xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(services.ReportSheetName, "E3"); got != "Fine." {
		t.Fatalf("unexpected feedback cell %q", got)
	}
}
