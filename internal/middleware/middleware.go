package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/metrics"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

type Config struct {
	// AuthToken is the shared bearer token. Empty disables authentication.
	AuthToken          string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Chain runs every API request through trace injection, authentication and rate limiting,
// and records its status and latency.
type Chain struct {
	authToken string
	limiter   *IPRateLimiter
	logger    *logger_i.Logger
}

func NewChain(cfg Config) *Chain {
	if cfg.RateLimitPerSecond <= 0 {
		cfg.RateLimitPerSecond = config.RATE_LIMIT_PER_SECOND
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = config.BURST_RATE_LIMIT_PER_SECOND
	}
	logger := logger_i.NewLogger("middleware")
	if cfg.AuthToken == "" {
		logger.Warn("AUTH_TOKEN is empty, requests are not authenticated")
	}
	return &Chain{
		authToken: cfg.AuthToken,
		limiter:   NewIPRateLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
		logger:    logger,
	}
}

func (c *Chain) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK} //metrics
		re := c.processRequest(requestResponseStruct{req: r, writer: rec})

		if !handleBadRequest(re) {
			c.record(r, rec, start)
			return
		}
		next(rec, re.req)
		c.record(re.req, rec, start)
	}
}

// Handler adapts the chain to chi's middleware signature.
func (c *Chain) Handler(next http.Handler) http.Handler {
	return c.Wrap(next.ServeHTTP)
}

func (c *Chain) processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = c.logger
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re.logger.Debug("New request received", "method", re.req.Method, "path", re.req.URL.Path)

	re = c.authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	return c.rateLimit(re)
}

func (c *Chain) record(r *http.Request, rec *metrics.HttpStatusRecorder, start time.Time) {
	path := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		path = rctx.RoutePattern()
	}
	metrics.HttpRequestsTotal.WithLabelValues(path, strconv.Itoa(rec.Status)).Inc()
	metrics.CaptureRequestDuration(path, time.Since(start))
}
