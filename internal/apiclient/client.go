// Package apiclient is a typed client for the interview prep HTTP API.
package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-prep/internal/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with status %d", e.Status)
	}
	return fmt.Sprintf("server responded with status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	timeout time.Duration
}

// New returns a client for baseURL. A zero timeout means no timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
	}
}

// Extract uploads the file at filePath and returns the text the server read from it.
func (c *Client) Extract(filePath string) (*models.ResumeDocument, error) {
	agent := c.post("/api/extract").
		SendFile(filePath, "resume").
		MultipartForm(nil)

	var doc models.ResumeDocument
	if err := c.do(agent, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) Generate(resumeText string) (string, error) {
	agent := c.post("/api/generate").JSON(models.GenerateRequest{ResumeText: &resumeText})

	var resp models.GenerateResponse
	if err := c.do(agent, &resp); err != nil {
		return "", err
	}
	return resp.Questions, nil
}

func (c *Client) Score(questions, answers []string) (*models.ScoreResponse, error) {
	agent := c.post("/api/score").JSON(models.ScoreRequest{
		Questions: questions,
		Answers:   answers,
	})

	var resp models.ScoreResponse
	if err := c.do(agent, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Report returns the rendered report file in the given format (xlsx or txt).
func (c *Client) Report(format string, req models.ReportRequest) ([]byte, error) {
	agent := c.post("/api/report?format=" + url.QueryEscape(format)).JSON(req)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("report request failed: %w", errors.Join(errs...))
	}
	if code >= fiber.StatusBadRequest {
		return nil, newAPIError(code, body)
	}
	return body, nil
}

func (c *Client) post(path string) *fiber.Agent {
	agent := fiber.Post(c.baseURL + path)
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}
	return agent
}

func (c *Client) do(agent *fiber.Agent, out any) error {
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errors.Join(errs...))
	}

	if code >= fiber.StatusBadRequest {
		return newAPIError(code, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func newAPIError(code int, body []byte) *APIError {
	var payload models.ErrorResponse
	_ = json.Unmarshal(body, &payload)

	return &APIError{Status: code, Message: payload.Error}
}
