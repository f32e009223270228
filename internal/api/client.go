package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kurator/kurator/internal/types"
)

// Endpoint paths of the labeling service
const (
	PathSuggestInstruction = "/api/query_gpt3"
	PathSuggestConfig      = "/api/query_gpt3_new_config"
	PathListDataPoints     = "/api/get_data_points"
	PathValidateConfigs    = "/api/validate_configs"
	PathAddDataPoint       = "/api/add_data_point"
	PathDeleteDataPoint    = "/api/del_data_point"

	// RequestIDHeader carries the per-call correlation id
	RequestIDHeader = "X-Request-ID"

	// DefaultTimeout bounds a call when Options.Timeout is zero
	DefaultTimeout = 30 * time.Second
)

// Recorder receives one entry per API call
type Recorder interface {
	Record(entry types.JournalEntry) error
}

// Options configures a Client
type Options struct {
	BaseURL       string
	SessionCookie string
	Timeout       time.Duration
	Logger        *slog.Logger
	Recorder      Recorder
	HTTPClient    *http.Client
}

// Client talks to the labeling service REST API
type Client struct {
	baseURL  string
	cookie   string
	timeout  time.Duration
	logger   *slog.Logger
	recorder Recorder
	http     *http.Client
}

// NewClient creates a client. BaseURL must be an absolute http(s) URL.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		// Deadlines come from the per-call context
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:  base,
		cookie:   sessionCookieHeader(opts.SessionCookie),
		timeout:  timeout,
		logger:   logger,
		recorder: opts.Recorder,
		http:     httpClient,
	}, nil
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SuggestInstruction asks the service for a change instruction describing before -> after
func (c *Client) SuggestInstruction(ctx context.Context, before, after string) (string, error) {
	body, err := c.do(ctx, "suggest_instruction", http.MethodPost, PathSuggestInstruction,
		types.SuggestInstructionRequest{Before: before, After: after})
	if err != nil {
		return "", err
	}
	return decodeText(body), nil
}

// SuggestConfig asks the service to apply instruction to before
func (c *Client) SuggestConfig(ctx context.Context, before, instruction string) (string, error) {
	body, err := c.do(ctx, "suggest_config", http.MethodPost, PathSuggestConfig,
		types.SuggestConfigRequest{Before: before, ChangeInstruction: instruction})
	if err != nil {
		return "", err
	}
	return decodeText(body), nil
}

// ListDataPoints fetches the ordered list of data points
func (c *Client) ListDataPoints(ctx context.Context) ([]types.DataPoint, error) {
	body, err := c.do(ctx, "list_data_points", http.MethodGet, PathListDataPoints, nil)
	if err != nil {
		return nil, err
	}

	var points []types.DataPoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("failed to decode data points: %w", err)
	}
	return points, nil
}

// ValidateConfigs asks the service to validate both configs
func (c *Client) ValidateConfigs(ctx context.Context, before, after string) (types.Validation, error) {
	body, err := c.do(ctx, "validate_configs", http.MethodPost, PathValidateConfigs,
		types.ValidateRequest{Before: before, After: after})
	if err != nil {
		return types.Validation{}, err
	}
	return decodeValidation(body)
}

// AddDataPoint creates (nil id) or updates a data point
func (c *Client) AddDataPoint(ctx context.Context, req types.AddDataPointRequest) error {
	_, err := c.do(ctx, "add_data_point", http.MethodPost, PathAddDataPoint, req)
	return err
}

// DeleteDataPoint deletes the data point with the given id
func (c *Client) DeleteDataPoint(ctx context.Context, id int64) error {
	path := PathDeleteDataPoint + "?data_point_id=" + url.QueryEscape(strconv.FormatInt(id, 10))
	_, err := c.do(ctx, "delete_data_point", http.MethodPost, path, nil)
	return err
}

// do performs one JSON round trip and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, operation, method, path string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	start := time.Now()
	entry := types.JournalEntry{
		Timestamp: start,
		RequestID: requestID,
		Operation: operation,
		Method:    method,
		Path:      path,
	}

	resp, err := c.http.Do(req)
	entry.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		err = transportError(ctx, err)
		entry.Error = err.Error()
		c.finish(entry)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	entry.StatusCode = resp.StatusCode
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", transportError(ctx, err))
		entry.Error = err.Error()
		c.finish(entry)
		return nil, err
	}

	if !IsSuccessStatus(resp.StatusCode) {
		statusErr := &StatusError{Code: resp.StatusCode, Body: string(body)}
		entry.Error = statusErr.Error()
		c.finish(entry)
		return nil, statusErr
	}

	c.finish(entry)
	return body, nil
}

// finish logs the call and hands it to the recorder
func (c *Client) finish(entry types.JournalEntry) {
	attrs := []any{
		"operation", entry.Operation,
		"method", entry.Method,
		"path", entry.Path,
		"request_id", entry.RequestID,
		"status", entry.StatusCode,
		"duration_ms", entry.DurationMs,
	}
	if entry.Error != "" {
		c.logger.Warn("api call failed", append(attrs, "error", entry.Error)...)
	} else {
		c.logger.Debug("api call", attrs...)
	}

	if c.recorder != nil {
		if err := c.recorder.Record(entry); err != nil {
			c.logger.Warn("failed to record journal entry", "error", err)
		}
	}
}

// sessionCookieHeader accepts either a bare session value or a full cookie pair
func sessionCookieHeader(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.Contains(value, "=") {
		return value
	}
	return "session=" + value
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
