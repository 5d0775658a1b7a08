// Package client is the typed HTTP client the front end talks to the API
// with. Credential injection is per-instance: the bearer token is attached
// by the client that owns it, never through process-global state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"chargemap/internal/apperr"
	"chargemap/internal/models"
)

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// APIError is the decoded server error envelope.
type APIError struct {
	StatusCode int                 `json:"-"`
	Message    string              `json:"message"`
	Fields     []apperr.FieldError `json:"errors,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// Client calls the chargemap API.
type Client struct {
	baseURL string
	client  HTTPDoer

	mu    sync.RWMutex
	token string
}

// New builds a client for the given API base URL.
func New(baseURL string, httpClient HTTPDoer) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

// SetToken attaches the bearer credential to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer credential.
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

// AuthResponse is the register/login payload.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register calls POST /api/auth/register.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login calls POST /api/auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStations calls GET /api/stations with the optional filter.
func (c *Client) ListStations(ctx context.Context, filter models.StationFilter) ([]models.Station, error) {
	path := "/api/stations"
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.ConnectorType != "" {
		query.Set("connectorType", filter.ConnectorType)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var out []models.Station
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStation calls GET /api/stations/{id}.
func (c *Client) GetStation(ctx context.Context, id string) (*models.Station, error) {
	var out models.Station
	if err := c.do(ctx, http.MethodGet, "/api/stations/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStation calls POST /api/stations.
func (c *Client) CreateStation(ctx context.Context, input *models.StationInput) (*models.Station, error) {
	var out models.Station
	if err := c.do(ctx, http.MethodPost, "/api/stations", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStation calls PUT /api/stations/{id}.
func (c *Client) UpdateStation(ctx context.Context, id string, input *models.StationInput) (*models.Station, error) {
	var out models.Station
	if err := c.do(ctx, http.MethodPut, "/api/stations/"+url.PathEscape(id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStation calls DELETE /api/stations/{id}.
func (c *Client) DeleteStation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/stations/"+url.PathEscape(id), nil, nil)
}

// Dashboard calls GET /api/dashboard.
func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
