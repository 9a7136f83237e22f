package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "Time to serve a request, streaming included.",
	Buckets: []float64{.05, .1, .5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"path"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"service"})

var embeddingAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "embedding_batch_attempts_total",
	Help: "Embedding requests issued per batch, labelled by the batch outcome",
}, []string{"outcome"})

var ingestionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ingestion_duration_seconds",
	Help:    "Time spent indexing one material.",
	Buckets: []float64{.5, 1, 5, 10, 30, 60, 120, 300},
}, []string{"status"})

var chunksIndexed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chunks_indexed_total",
	Help: "Chunk rows written to the vector store",
})

var insertBatchFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vector_insert_batch_failures_total",
	Help: "Vector store insert batches that were rejected",
})

var retrievalMatches = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "retrieval_matches",
	Help:    "Matches returned per chat turn after threshold filtering.",
	Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
})

var chatFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chat_context_fallbacks_total",
	Help: "Chat turns answered without course context, labelled by cause",
}, []string{"cause"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working through the recorder.
func (r *HttpStatusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *HttpStatusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func CaptureRequestDuration(path string, timeElapsed time.Duration) {
	httpRequestDuration.WithLabelValues(path).Observe(timeElapsed.Seconds())
}

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func RecordEmbeddingBatch(attempts int, succeeded bool) {
	outcome := "success"
	if !succeeded {
		outcome = "failure"
	}
	embeddingAttempts.WithLabelValues(outcome).Add(float64(attempts))
}

func CaptureIngestion(status string, timeElapsed time.Duration) {
	ingestionDuration.WithLabelValues(status).Observe(timeElapsed.Seconds())
}

func AddChunksIndexed(n int) {
	chunksIndexed.Add(float64(n))
}

func IncrementInsertBatchFailures() {
	insertBatchFailures.Inc()
}

func ObserveRetrievalMatches(n int) {
	retrievalMatches.Observe(float64(n))
}

func IncrementChatFallback(cause string) {
	chatFallbacks.WithLabelValues(cause).Inc()
}
