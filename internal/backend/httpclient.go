package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

const requestTimeout = 10 * time.Second

// Client implements TaskAPI and UserAPI against the backend's REST
// endpoints. Every request carries the identity token as a bearer
// credential; earlier drafts of the app were inconsistent about this,
// the client always attaches it.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// WithToken returns a copy of the client bound to a different bearer token.
// The dashboard holds one base client and rebinds it per session.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// do runs one request and decodes a 2xx response body into out (when out is
// non-nil). Non-2xx responses are turned into an error carrying the
// backend's message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewBuffer(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
		}
		var envelope errorEnvelope
		if err := json.Unmarshal(errorBody, &envelope); err == nil && envelope.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, envelope.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse response %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var envelope models.TasksEnvelope
	if err := c.do(ctx, http.MethodGet, "/get-tasks", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, task models.Task) error {
	return c.do(ctx, http.MethodPost, "/create-task", task, nil)
}

// UpdateTask submits the entire record; the backend replaces the stored
// task wholesale rather than patching fields.
func (c *Client) UpdateTask(ctx context.Context, task models.Task) error {
	return c.do(ctx, http.MethodPost, "/update-task", task, nil)
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	body := map[string]string{"taskId": taskID}
	return c.do(ctx, http.MethodDelete, "/delete-task", body, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var envelope models.UsersEnvelope
	if err := c.do(ctx, http.MethodGet, "/get-users", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Users, nil
}

func (c *Client) CreateUser(ctx context.Context, email, role string) error {
	body := map[string]string{"email": email, "role": role}
	return c.do(ctx, http.MethodPost, "/create-user", body, nil)
}

func (c *Client) DeleteUser(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodDelete, "/delete-user", body, nil)
}
