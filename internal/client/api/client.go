// Package api is a thin HTTP client for the taskvault server. It keeps the
// session token from the last successful register/login and sends it in the
// X-Auth header on every guarded call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akosarev/taskvault/internal/common"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string { return c.token }

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// do performs one API call. A non-nil out is filled from the response body;
// the returned response has its body already consumed and closed.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(common.AccessTokenHeaderName, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return resp, common.ErrorValidation
	case http.StatusUnauthorized:
		return resp, common.ErrorUnauthorized
	case http.StatusNotFound:
		return resp, common.ErrorNotFound
	default:
		return resp, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, err
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}

	return resp, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and stores the issued session token.
func (c *Client) Register(ctx context.Context, email string, password []byte) (*User, error) {
	var user User
	resp, err := c.do(ctx, http.MethodPost, "/users", credentials{Email: email, Password: string(password)}, &user)
	if err != nil {
		return nil, err
	}
	c.token = resp.Header.Get(common.AccessTokenHeaderName)
	return &user, nil
}

// Login authenticates and stores the issued session token.
func (c *Client) Login(ctx context.Context, email string, password []byte) (*User, error) {
	var user User
	resp, err := c.do(ctx, http.MethodPost, "/users/login", credentials{Email: email, Password: string(password)}, &user)
	if err != nil {
		return nil, err
	}
	c.token = resp.Header.Get(common.AccessTokenHeaderName)
	return &user, nil
}

// Me returns the account behind the current session.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the current session server-side and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodDelete, "/users/me/token", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) CreateTask(ctx context.Context, text string) (*Task, error) {
	var task Task
	if _, err := c.do(ctx, http.MethodPost, "/tasks", map[string]string{"text": text}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// CompleteTask flips the task to completed.
func (c *Client) CompleteTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	body := map[string]bool{"completed": true}
	if _, err := c.do(ctx, http.MethodPatch, "/tasks/"+id, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
