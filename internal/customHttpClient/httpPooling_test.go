package customHttpClient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
)

func TestNewClient(t *testing.T) {
	c := NewClient(5 * time.Second)
	if c.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("unexpected transport %T", c.Transport)
	}
	if tr.MaxIdleConnsPerHost != config.MaxIdleConnsPerHost || tr.MaxIdleConns != config.MaxIdleConns {
		t.Errorf("pool not tuned: %d/%d", tr.MaxIdleConns, tr.MaxIdleConnsPerHost)
	}
	if NewClient(time.Second).Transport == c.Transport {
		t.Error("clients should not share a transport")
	}
}

func TestNewStreamingClient_OutlivesDependencyTimeout(t *testing.T) {
	c := NewStreamingClient(50 * time.Millisecond)
	if c.Timeout != 0 {
		t.Fatalf("streaming client must not carry an overall timeout, got %v", c.Timeout)
	}
	tr := c.Transport.(*http.Transport)
	if tr.ResponseHeaderTimeout != 50*time.Millisecond {
		t.Errorf("header timeout = %v", tr.ResponseHeaderTimeout)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("late token"))
	}))
	defer srv.Close()

	resp, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("body read cut short: %v", err)
	}
	if string(body) != "late token" {
		t.Errorf("body = %q", body)
	}
}
