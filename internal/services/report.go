package services

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	ReportSheetName = "Interview Feedback"
	notAvailable    = "N/A"
)

// ReportRow is one question of the feedback report.
type ReportRow struct {
	Number   int
	Question string
	Answer   string
	Score    string
	Feedback string
	// HasScore is false when Score holds the N/A placeholder.
	HasScore bool
	rawScore float64
}

// BuildReportRows lines up the report columns by question index. Missing
// answers are left empty; missing scores and empty feedback become N/A.
func BuildReportRows(questions, answers []string, scores []float64, feedback []string) []ReportRow {
	rows := make([]ReportRow, 0, len(questions))

	for i, question := range questions {
		row := ReportRow{
			Number:   i + 1,
			Question: question,
			Score:    notAvailable,
			Feedback: notAvailable,
		}

		if i < len(answers) {
			row.Answer = answers[i]
		}
		if i < len(scores) {
			row.rawScore = scores[i]
			row.Score = strconv.FormatFloat(scores[i], 'f', -1, 64)
			row.HasScore = true
		}
		if i < len(feedback) && feedback[i] != "" {
			row.Feedback = feedback[i]
		}

		rows = append(rows, row)
	}

	return rows
}

// WriteTextReport renders rows as plain text, one block per question.
func WriteTextReport(w io.Writer, rows []ReportRow) error {
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "Q%d: %s\nAns: %s\nScore: %s\nFeedback: %s\n\n",
			row.Number, row.Question, row.Answer, row.Score, row.Feedback); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// BuildXLSXReport renders rows as a single-sheet workbook.
func BuildXLSXReport(rows []ReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheetName); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %w", err)
	}

	headers := []string{"#", "Question", "Answer", "Score", "Feedback"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(ReportSheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	f.SetCellStyle(ReportSheetName, "A1", "E1", headerStyle)

	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create text style: %w", err)
	}

	f.SetColWidth(ReportSheetName, "A", "A", 5)
	f.SetColWidth(ReportSheetName, "B", "C", 60)
	f.SetColWidth(ReportSheetName, "D", "D", 8)
	f.SetColWidth(ReportSheetName, "E", "E", 60)

	for i, row := range rows {
		r := i + 2
		f.SetCellValue(ReportSheetName, fmt.Sprintf("A%d", r), row.Number)
		f.SetCellValue(ReportSheetName, fmt.Sprintf("B%d", r), row.Question)
		f.SetCellValue(ReportSheetName, fmt.Sprintf("C%d", r), row.Answer)
		if row.HasScore {
			f.SetCellValue(ReportSheetName, fmt.Sprintf("D%d", r), row.rawScore)
		} else {
			f.SetCellValue(ReportSheetName, fmt.Sprintf("D%d", r), notAvailable)
		}
		f.SetCellValue(ReportSheetName, fmt.Sprintf("E%d", r), row.Feedback)
	}

	if len(rows) > 0 {
		f.SetCellStyle(ReportSheetName, "B2", fmt.Sprintf("E%d", len(rows)+1), wrapStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write report workbook: %w", err)
	}

	return buf.Bytes(), nil
}
