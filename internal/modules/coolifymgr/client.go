// SPDX-License-Identifier: MPL-2.0

package coolifymgr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"maxcli/internal/config"
)

const apiPrefix = "/api/v1"

var (
	// ErrNotConfigured is returned when the Coolify base URL or token is missing.
	ErrNotConfigured = errors.New("coolify is not configured")
	// ErrUnauthorized is returned on 401/403 responses.
	ErrUnauthorized = errors.New("coolify rejected the API token")
)

type (
	// Client is a minimal Coolify REST API client.
	Client struct {
		baseURL string
		token   string
		http    *http.Client
	}

	// Application is the subset of Coolify application fields the CLI shows.
	Application struct {
		UUID   string `json:"uuid"`
		Name   string `json:"name"`
		Status string `json:"status"`
	}

	// Service is the subset of Coolify service fields the CLI shows.
	Service struct {
		UUID   string `json:"uuid"`
		Name   string `json:"name"`
		Status string `json:"status"`
	}

	// Server is the subset of Coolify server fields the CLI shows.
	Server struct {
		UUID        string `json:"uuid"`
		Name        string `json:"name"`
		IP          string `json:"ip"`
		Description string `json:"description"`
	}
)

// NewClient builds a client from the coolify section of the configuration.
// The API token is read from the environment variable named by token_env so
// it never lives in a file.
func NewClient(cfg config.CoolifyConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: coolify.base_url is not set", ErrNotConfigured)
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid coolify.base_url: %w", err)
	}

	token := os.Getenv(cfg.TokenEnv)
	if token == "" {
		return nil, fmt.Errorf("%w: environment variable %s is empty", ErrNotConfigured, cfg.TokenEnv)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("coolify request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("coolify returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid JSON from coolify: %w", err)
	}
	return nil
}

// Health checks the instance health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil)
}

// Version returns the instance version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPrefix+"/version", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("coolify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("coolify returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(body)), `"`), nil
}

// Applications lists all applications.
func (c *Client) Applications(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := c.do(ctx, http.MethodGet, "/applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Services lists all services.
func (c *Client) Services(ctx context.Context) ([]Service, error) {
	var services []Service
	if err := c.do(ctx, http.MethodGet, "/services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

// Servers lists all servers.
func (c *Client) Servers(ctx context.Context) ([]Server, error) {
	var servers []Server
	if err := c.do(ctx, http.MethodGet, "/servers", &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// StartApplication starts the application with the given UUID.
func (c *Client) StartApplication(ctx context.Context, uuid string) error {
	return c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(uuid)+"/start", nil)
}

// StopApplication stops the application with the given UUID.
func (c *Client) StopApplication(ctx context.Context, uuid string) error {
	return c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(uuid)+"/stop", nil)
}

// RestartApplication restarts the application with the given UUID.
func (c *Client) RestartApplication(ctx context.Context, uuid string) error {
	return c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(uuid)+"/restart", nil)
}

// DeployApplication triggers a deployment for the application UUID.
func (c *Client) DeployApplication(ctx context.Context, uuid string) error {
	return c.do(ctx, http.MethodGet, "/deploy?uuid="+url.QueryEscape(uuid), nil)
}

// StartService starts the service with the given UUID.
func (c *Client) StartService(ctx context.Context, uuid string) error {
	return c.do(ctx, http.MethodGet, "/services/"+url.PathEscape(uuid)+"/start", nil)
}

// StopService stops the service with the given UUID.
func (c *Client) StopService(ctx context.Context, uuid string) error {
	return c.do(ctx, http.MethodGet, "/services/"+url.PathEscape(uuid)+"/stop", nil)
}

// RestartService restarts the service with the given UUID.
func (c *Client) RestartService(ctx context.Context, uuid string) error {
	return c.do(ctx, http.MethodGet, "/services/"+url.PathEscape(uuid)+"/restart", nil)
}
