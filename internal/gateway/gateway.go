// Package gateway is the sole boundary to the external contracts
// backend. It translates typed calls into REST requests, confines the
// backend's Spanish wire field names to its own DTOs, and normalizes
// every failure into an APIError. Calls are at-most-once: no retries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/contratos-dashboard/internal/config"
)

type Gateway struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func New(cfg config.BackendConfig, log zerolog.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// do executes one request and normalizes transport and HTTP failures.
// A nil error means a 2xx response; the caller owns the body.
func (g *Gateway) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		return nil, &APIError{
			Kind:         KindUnreachable,
			Message:      "backend unreachable",
			ServerDetail: err.Error(),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, g.normalizeFailure(method, path, resp)
	}
	return resp, nil
}

// doJSON executes a request with an optional JSON payload and decodes
// the 2xx response body into out when out is non-nil.
func (g *Gateway) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := g.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// backendProblem covers the error body shapes the backend is known to
// produce: a bare message, a title, or field errors keyed by name.
type backendProblem struct {
	Message string              `json:"message"`
	Title   string              `json:"title"`
	Detail  string              `json:"detail"`
	Errors  map[string][]string `json:"errors"`
}

func (g *Gateway) normalizeFailure(method, path string, resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	apiErr := &APIError{HTTPStatus: resp.StatusCode}

	var problem backendProblem
	if err := json.Unmarshal(raw, &problem); err == nil {
		switch {
		case problem.Message != "":
			apiErr.ServerDetail = problem.Message
		case problem.Title != "":
			apiErr.ServerDetail = problem.Title
		case problem.Detail != "":
			apiErr.ServerDetail = problem.Detail
		}
		if len(problem.Errors) > 0 {
			apiErr.Fields = make(map[string]string, len(problem.Errors))
			for field, messages := range problem.Errors {
				apiErr.Fields[field] = strings.Join(messages, "; ")
			}
		}
	} else if detail := strings.TrimSpace(string(raw)); detail != "" {
		apiErr.ServerDetail = detail
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		apiErr.Kind = KindValidation
		apiErr.Message = "backend rejected the request"
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
		apiErr.Message = "authentication required"
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		apiErr.Kind = KindNotFound
		apiErr.Message = "resource not found"
	default:
		apiErr.Kind = KindServer
		apiErr.Message = "backend error"
	}

	g.log.Warn().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("kind", string(apiErr.Kind)).
		Msg("backend call failed")
	return apiErr
}

// parseWireDate accepts the date formats the backend emits; it is not
// consistent between endpoints.
func parseWireDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func formatWireDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
