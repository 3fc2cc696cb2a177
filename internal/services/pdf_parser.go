package services

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/interview-prep/internal/models"
)

type ResumeExtractor interface {
	Extract(fileName string, data []byte) (*models.ResumeDocument, error)
	ExtractFile(filePath string) (*models.ResumeDocument, error)
}

type resumeKind int

const (
	kindUnknown resumeKind = iota
	kindPDF
	kindDOCX
	kindText
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag           = regexp.MustCompile(`<[^>]*>`)
)

type resumeExtractor struct{}

func NewResumeExtractor() ResumeExtractor {
	return &resumeExtractor{}
}

// IsSupportedResume reports whether fileName has an extension the extractor reads.
func IsSupportedResume(fileName string) bool {
	return kindFromName(fileName) != kindUnknown
}

func kindFromName(fileName string) resumeKind {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return kindPDF
	case ".docx":
		return kindDOCX
	case ".txt":
		return kindText
	default:
		return kindUnknown
	}
}

func (p *resumeExtractor) ExtractFile(filePath string) (*models.ResumeDocument, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}

	return p.Extract(filepath.Base(filePath), data)
}

func (p *resumeExtractor) Extract(fileName string, data []byte) (*models.ResumeDocument, error) {
	kind := kindFromName(fileName)
	if kind == kindUnknown && bytes.HasPrefix(data, []byte("%PDF-")) {
		kind = kindPDF
	}

	var (
		text      string
		pageCount = 1
		err       error
	)

	switch kind {
	case kindPDF:
		text, pageCount, err = extractPDFText(data)
	case kindDOCX:
		text, err = extractDocxText(data)
	case kindText:
		text = string(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(fileName))
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	return &models.ResumeDocument{
		FileName:  fileName,
		Text:      text,
		PageCount: pageCount,
	}, nil
}

// extractPDFText joins the plain text of every page in order, each followed
// by a newline. Pages that fail to decode are skipped.
func extractPDFText(data []byte) (text string, pageCount int, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to open PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), totalPage, nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText keeps the text runs of a document.xml body, one line per paragraph.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
