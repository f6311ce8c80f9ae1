// Package client is a Go client for the to-do API.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/todokeeper/internal/certgen"
	"github.com/atinyakov/todokeeper/internal/models"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the to-do API using HTTP Basic credentials.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.http = hc
		return nil
	}
}

// WithCAFile trusts the PEM certificates in path when connecting over
// HTTPS, e.g. the self-signed certificate from tools/certgen.
func WithCAFile(path string) Option {
	return func(c *Client) error {
		pool, err := certgen.LoadCertPool(path)
		if err != nil {
			return err
		}
		c.http = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					RootCAs:    pool,
					MinVersion: tls.VersionTLS12,
				},
			},
			Timeout: c.http.Timeout,
		}
		return nil
	}
}

// New returns a Client for the API at baseURL.
func New(baseURL, username, password string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Create adds a new item.
func (c *Client) Create(ctx context.Context, req models.CreateTodoRequest) (models.Todo, error) {
	var resp models.TodoResponse
	if err := c.do(ctx, http.MethodPost, "/todos", req, &resp); err != nil {
		return models.Todo{}, err
	}
	return resp.Todo, nil
}

// List returns all items.
func (c *Client) List(ctx context.Context) ([]models.Todo, error) {
	var todos []models.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Get returns a single item.
func (c *Client) Get(ctx context.Context, id int64) (models.Todo, error) {
	var todo models.Todo
	if err := c.do(ctx, http.MethodGet, todoPath(id), nil, &todo); err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

// Update sends the fields set in req.
func (c *Client) Update(ctx context.Context, id int64, req models.UpdateTodoRequest) (models.Todo, error) {
	var resp models.TodoResponse
	if err := c.do(ctx, http.MethodPut, todoPath(id), req, &resp); err != nil {
		return models.Todo{}, err
	}
	return resp.Todo, nil
}

// Complete marks an item as completed.
func (c *Client) Complete(ctx context.Context, id int64) (models.Todo, error) {
	var resp models.TodoResponse
	if err := c.do(ctx, http.MethodPatch, todoPath(id)+"/complete", nil, &resp); err != nil {
		return models.Todo{}, err
	}
	return resp.Todo, nil
}

// Delete removes an item and returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, id int64) (string, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodDelete, todoPath(id), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func todoPath(id int64) string {
	return "/todos/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var e models.ErrorResponse
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
