// SPDX-License-Identifier: MPL-2.0

package coolifymgr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"maxcli/internal/config"
	"maxcli/internal/testutil"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Cleanup(testutil.MustSetenv(t, "COOLIFY_API_TOKEN", "test-token"))

	client, err := NewClient(config.CoolifyConfig{
		BaseURL:  srv.URL,
		TokenEnv: "COOLIFY_API_TOKEN",
	})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(config.CoolifyConfig{TokenEnv: "COOLIFY_API_TOKEN"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("NewClient() without base URL should return ErrNotConfigured, got %v", err)
	}
}

func TestNewClient_RequiresToken(t *testing.T) {
	t.Cleanup(testutil.MustUnsetenv(t, "COOLIFY_API_TOKEN"))

	_, err := NewClient(config.CoolifyConfig{
		BaseURL:  "https://coolify.example.com",
		TokenEnv: "COOLIFY_API_TOKEN",
	})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("NewClient() without token should return ErrNotConfigured, got %v", err)
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health() failed: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization header = %q, want Bearer test-token", gotAuth)
	}
}

func TestClient_Applications(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/applications" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"uuid":"abc","name":"web","status":"running"}]`))
	}))

	apps, err := client.Applications(context.Background())
	if err != nil {
		t.Fatalf("Applications() failed: %v", err)
	}
	if len(apps) != 1 || apps[0].UUID != "abc" || apps[0].Name != "web" || apps[0].Status != "running" {
		t.Errorf("Applications() = %+v", apps)
	}
}

func TestClient_UnauthorizedMapsToSentinel(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	err := client.Health(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Health() on 401 should return ErrUnauthorized, got %v", err)
	}
}

func TestClient_ServerErrorIncludesStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	err := client.Health(context.Background())
	if err == nil {
		t.Fatal("Health() on 500 should fail")
	}
}

func TestClient_DeployUsesQueryParam(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.DeployApplication(context.Background(), "app-123"); err != nil {
		t.Fatalf("DeployApplication() failed: %v", err)
	}
	if gotQuery != "uuid=app-123" {
		t.Errorf("deploy query = %q, want uuid=app-123", gotQuery)
	}
}
