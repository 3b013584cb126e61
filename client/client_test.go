package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	c := New()

	if c == nil {
		t.Fatal("Expected client to be created")
	}

	if c.HTTPClient == nil {
		t.Fatal("Expected HTTPClient to be initialized")
	}

	if c.HTTPClient.Timeout != defaultTimeout {
		t.Errorf("Expected timeout %v, got %v", defaultTimeout, c.HTTPClient.Timeout)
	}

	if c.UserAgent != userAgentValue {
		t.Errorf("Expected user agent '%s', got '%s'", userAgentValue, c.UserAgent)
	}
}

func TestNewWith(t *testing.T) {
	cfg := Config{
		Timeout:   10 * time.Second,
		UserAgent: "Custom Agent",
		ProxyURL:  "http://proxy.example.com:8080",
	}

	c := NewWith(cfg)

	if c.HTTPClient.Timeout != cfg.Timeout {
		t.Errorf("Expected timeout %v, got %v", cfg.Timeout, c.HTTPClient.Timeout)
	}

	if c.UserAgent != cfg.UserAgent {
		t.Errorf("Expected user agent '%s', got '%s'", cfg.UserAgent, c.UserAgent)
	}
}

func TestNewWith_Defaults(t *testing.T) {
	c := NewWith(Config{})

	if c.HTTPClient.Timeout != defaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", defaultTimeout, c.HTTPClient.Timeout)
	}
	if c.UserAgent != userAgentValue {
		t.Errorf("Expected default user agent, got '%s'", c.UserAgent)
	}
}

func TestGet_SetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := New()
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if gotUA != userAgentValue {
		t.Errorf("Expected user agent '%s', got '%s'", userAgentValue, gotUA)
	}
}

func TestGet_SingleAttempt(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New()
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if attempts != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", attempts)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500 surfaced to caller, got %d", resp.StatusCode)
	}
}

func TestNewWith_UserAgentOverridesRequestHeader(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := NewWith(Config{UserAgent: "my-custom-agent/1.0"})

	// Callers that share the HTTPClient set their own User-Agent before
	// sending; the configured one must still win on the wire.
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("User-Agent", "hardcoded-elsewhere")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if gotUA != "my-custom-agent/1.0" {
		t.Errorf("User-Agent on the wire = %q, want my-custom-agent/1.0", gotUA)
	}
}

func TestNew_DefaultUserAgentOnPlainDo(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := New()
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if gotUA != userAgentValue {
		t.Errorf("User-Agent = %q, want the default", gotUA)
	}
}
