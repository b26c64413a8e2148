// Package gemini is a rate-limited HTTP client for the Gemini API,
// covering PDF upload via the File API and structured paper review
// via generateContent.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/haoyanli/paperflow/internal/paper"
)

const (
	// BaseURL is the Gemini API base URL.
	BaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is the model used for paper analysis.
	DefaultModel = "gemini-3-pro-preview"

	// RateLimit is a conservative 2 requests per second.
	RateLimit = 2.0

	// DefaultPollInterval is the delay between file state polls.
	DefaultPollInterval = 2 * time.Second

	// DefaultPollTimeout bounds how long an uploaded file may stay
	// in the PROCESSING state before we give up.
	DefaultPollTimeout = 5 * time.Minute
)

// Client is a rate-limited HTTP client for the Gemini API.
type Client struct {
	httpClient   *http.Client
	limiter      *rate.Limiter
	apiKey       string
	baseURL      string
	model        string
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithModel sets the model used for analysis.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithPolling sets the file processing poll interval and timeout.
func WithPolling(interval, timeout time.Duration) ClientOption {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
		if timeout > 0 {
			c.pollTimeout = timeout
		}
	}
}

// NewClient creates a new Gemini API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	// Uploads of large PDFs can take a while.
	c := &Client{
		httpClient:   &http.Client{Timeout: 3 * time.Minute},
		limiter:      rate.NewLimiter(rate.Limit(RateLimit), 1),
		apiKey:       apiKey,
		baseURL:      BaseURL,
		model:        DefaultModel,
		pollInterval: DefaultPollInterval,
		pollTimeout:  DefaultPollTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// fileHandle identifies an uploaded file and its processing state.
type fileHandle struct {
	Name  string `json:"name"`
	URI   string `json:"uri"`
	State string `json:"state"`
}

// reviewPayload mirrors the JSON schema the system instruction asks for.
type reviewPayload struct {
	Summary     string `json:"summary"`
	Novelty     string `json:"novelty"`
	Methodology string `json:"methodology"`
	Validation  string `json:"validation"`
	Discussion  string `json:"discussion"`
	NextSteps   string `json:"next_steps"`
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	}
	if resp.StatusCode == 429 {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}
	return nil
}

// uploadPDF uploads a PDF through the resumable upload protocol: an
// initial request carrying the metadata returns the upload URL, then a
// single request carries the bytes and finalizes.
func (c *Client) uploadPDF(ctx context.Context, pdfPath string) (*fileHandle, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}

	meta, err := json.Marshal(map[string]any{
		"file": map[string]any{"display_name": filepath.Base(pdfPath)},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling upload metadata: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	start, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/upload/v1beta/files", bytes.NewReader(meta))
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	start.Header.Set("Content-Type", "application/json")
	start.Header.Set("x-goog-api-key", c.apiKey)
	start.Header.Set("X-Goog-Upload-Protocol", "resumable")
	start.Header.Set("X-Goog-Upload-Command", "start")
	start.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.Itoa(len(data)))
	start.Header.Set("X-Goog-Upload-Header-Content-Type", "application/pdf")

	resp, err := c.httpClient.Do(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	if err := checkHTTPErrors(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	uploadURL := resp.Header.Get("X-Goog-Upload-URL")
	if uploadURL == "" {
		return nil, fmt.Errorf("%w: missing upload URL", ErrInvalidResponse)
	}

	upload, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	upload.Header.Set("x-goog-api-key", c.apiKey)
	upload.Header.Set("X-Goog-Upload-Command", "upload, finalize")
	upload.Header.Set("X-Goog-Upload-Offset", "0")

	resp, err = c.httpClient.Do(upload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()
	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	var result struct {
		File fileHandle `json:"file"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: parsing upload response: %v", ErrInvalidResponse, err)
	}
	if result.File.Name == "" {
		return nil, fmt.Errorf("%w: upload response has no file name", ErrInvalidResponse)
	}
	return &result.File, nil
}

// getFile refreshes the state of an uploaded file.
func (c *Client) getFile(ctx context.Context, name string) (*fileHandle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1beta/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()
	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	var file fileHandle
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: parsing file state: %v", ErrInvalidResponse, err)
	}
	return &file, nil
}

// waitForFile polls until the uploaded file becomes ACTIVE. A FAILED
// state is fatal; any other state keeps polling until the timeout.
func (c *Client) waitForFile(ctx context.Context, file *fileHandle) (*fileHandle, error) {
	deadline := time.Now().Add(c.pollTimeout)

	for {
		if file.State == "ACTIVE" {
			return file, nil
		}
		if file.State == "FAILED" {
			return nil, fmt.Errorf("%w: %s", ErrProcessingFailed, file.Name)
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrProcessingTimeout, file.Name)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		refreshed, err := c.getFile(ctx, file.Name)
		if err != nil {
			// Transient poll errors are retried until the deadline.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		file = refreshed
	}
}

// generateReview asks the model to review the uploaded PDF and parses
// the structured JSON it returns.
func (c *Client) generateReview(ctx context.Context, file *fileHandle) (paper.Review, error) {
	body, err := json.Marshal(map[string]any{
		"system_instruction": map[string]any{
			"parts": []map[string]any{{"text": systemInstruction}},
		},
		"contents": []map[string]any{{
			"parts": []map[string]any{
				{"file_data": map[string]any{
					"mime_type": "application/pdf",
					"file_uri":  file.URI,
				}},
				{"text": userPrompt},
			},
		}},
		"generationConfig": map[string]any{
			"response_mime_type": "application/json",
		},
	})
	if err != nil {
		return paper.Review{}, fmt.Errorf("marshaling request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return paper.Review{}, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1beta/models/"+c.model+":generateContent", bytes.NewReader(body))
	if err != nil {
		return paper.Review{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return paper.Review{}, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()
	if err := checkHTTPErrors(resp); err != nil {
		return paper.Review{}, err
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return paper.Review{}, fmt.Errorf("%w: parsing response: %v", ErrInvalidResponse, err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return paper.Review{}, fmt.Errorf("%w: no candidates returned", ErrInvalidResponse)
	}

	var payload reviewPayload
	text := result.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return paper.Review{}, fmt.Errorf("%w: parsing review JSON: %v", ErrInvalidResponse, err)
	}

	return paper.Review{
		Summary:     payload.Summary,
		Novelty:     payload.Novelty,
		Methodology: payload.Methodology,
		Validation:  payload.Validation,
		Discussion:  payload.Discussion,
		NextSteps:   payload.NextSteps,
	}, nil
}

// AnalyzePaper uploads the PDF, waits until the file is processed, and
// returns the model's structured review.
func (c *Client) AnalyzePaper(ctx context.Context, pdfPath string) (paper.Review, error) {
	file, err := c.uploadPDF(ctx, pdfPath)
	if err != nil {
		return paper.Review{}, err
	}

	file, err = c.waitForFile(ctx, file)
	if err != nil {
		return paper.Review{}, err
	}

	return c.generateReview(ctx, file)
}
