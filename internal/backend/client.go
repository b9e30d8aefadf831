package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrUnauthorized is returned for 401 and 403 responses.
var ErrUnauthorized = errors.New("backend: unauthorized")

// APIError is any other non-2xx response. Detail is FastAPI's error text.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend: status %d", e.Status)
	}
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Detail)
}

// Client talks to the REST backend. It never retries.
type Client struct {
	baseURL string
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *Client) url(path string) string {
	return c.baseURL + "/api" + path
}

type call struct {
	token    string
	notFound error
	headers  map[string]string
}

// do sends the prepared agent and decodes a 2xx body into out.
func (c *Client) do(a *fiber.Agent, opts call, out any) error {
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if opts.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+opts.token)
	}
	for k, v := range opts.headers {
		a.Set(k, v)
	}
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("backend request: %w", err)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("backend request: %w", errors.Join(errs...))
	}

	switch {
	case code == fiber.StatusUnauthorized || code == fiber.StatusForbidden:
		return ErrUnauthorized
	case code == fiber.StatusNotFound && opts.notFound != nil:
		return opts.notFound
	case code < 200 || code > 299:
		return &APIError{Status: code, Detail: detail(body)}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// detail extracts FastAPI's "detail", which is either a string or a list of
// validation errors.
func detail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	return string(payload.Detail)
}
