package customHttpClient

import (
	"net/http"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
)

// NewClient returns the pooled client used by the embedding providers.
// timeout bounds one whole call.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: pooledTransport(),
		Timeout:   timeout,
	}
}

// NewStreamingClient returns a pooled client for chat streams. It has no overall timeout:
// the request context bounds the stream and headerTimeout bounds the wait for the first byte.
func NewStreamingClient(headerTimeout time.Duration) *http.Client {
	transport := pooledTransport()
	transport.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: transport}
}

func pooledTransport() *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = config.MaxIdleConns
	transport.MaxIdleConnsPerHost = config.MaxIdleConnsPerHost
	transport.IdleConnTimeout = config.IdleConnTimeout
	return transport
}
