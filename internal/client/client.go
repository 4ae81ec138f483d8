// Package client talks to a todod HTTP server and implements backend.Backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sandeepkv93/todod/internal/auth"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/model"
)

// APIError is a 4xx answer other than 401 and 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	token   func() string

	HTTPClient *http.Client
}

var _ backend.Backend = (*Client)(nil)

// New returns a client for baseURL. token supplies the bearer token per call
// and may be nil for the unauthenticated endpoints.
func New(baseURL string, token func() string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Register(ctx context.Context, req auth.RegisterRequest) (auth.Grant, error) {
	var out auth.Grant
	err := c.do(ctx, "register", http.MethodPost, "/api/auth/register", req, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusConflict:
			return auth.Grant{}, fmt.Errorf("%w: %s", auth.ErrEmailTaken, apiErr.Message)
		case http.StatusBadRequest:
			return auth.Grant{}, fmt.Errorf("%w: %s", auth.ErrInvalidRegistration, apiErr.Message)
		}
	}
	return out, err
}

func (c *Client) Login(ctx context.Context, req auth.LoginRequest) (auth.Grant, error) {
	var out auth.Grant
	err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", req, &out)
	if errors.Is(err, backend.ErrUnauthorized) {
		return auth.Grant{}, auth.ErrInvalidCredentials
	}
	return out, err
}

func (c *Client) FetchTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, "fetch tasks", http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, in model.NewTask) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	var out model.Task
	err := c.do(ctx, "create task", http.MethodPost, "/api/tasks", in, &out)
	return out, err
}

func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status model.Status) (model.Task, error) {
	var out model.Task
	body := map[string]string{"status": string(status)}
	err := c.do(ctx, "update task status", http.MethodPatch, "/api/tasks/"+url.PathEscape(id)+"/status", body, &out)
	return out, err
}

func (c *Client) SetTaskCompleted(ctx context.Context, id string, done bool) (model.Task, error) {
	var out model.Task
	body := map[string]bool{"completed": done}
	err := c.do(ctx, "set task completed", http.MethodPatch, "/api/tasks/"+url.PathEscape(id)+"/completed", body, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, "delete task", http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) FetchReminders(ctx context.Context) ([]model.Reminder, error) {
	var out []model.Reminder
	if err := c.do(ctx, "fetch reminders", http.MethodGet, "/api/reminders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetReminderRead(ctx context.Context, id string, read bool) (model.Reminder, error) {
	var out model.Reminder
	body := map[string]bool{"isRead": read}
	err := c.do(ctx, "set reminder read", http.MethodPatch, "/api/reminders/"+url.PathEscape(id)+"/read", body, &out)
	return out, err
}

func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	return c.do(ctx, "delete reminder", http.MethodDelete, "/api/reminders/"+url.PathEscape(id), nil, nil)
}

// do sends one request. Transport failures and 5xx answers become
// *backend.NetworkError, 404 becomes backend.ErrNotFound and 401
// backend.ErrUnauthorized.
func (c *Client) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: %s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: %s: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &backend.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &backend.NetworkError{Op: op, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", backend.ErrNotFound, errorMessage(raw, path))
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", backend.ErrUnauthorized, errorMessage(raw, op))
	case resp.StatusCode >= http.StatusInternalServerError:
		return &backend.NetworkError{Op: op, Err: fmt.Errorf("server answered %d: %s", resp.StatusCode, errorMessage(raw, resp.Status))}
	case resp.StatusCode >= http.StatusBadRequest:
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &backend.NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func errorMessage(raw []byte, fallback string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fallback
}
