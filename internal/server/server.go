package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/akolanti/CampusAI/internal/adapter/utils"
	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/handlers"
	"github.com/akolanti/CampusAI/internal/middleware"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

type Routes struct {
	Handler *handlers.Handler
	Chain   *middleware.Chain
	// MCP is mounted at /mcp when set.
	MCP http.Handler
}

// NewRouter mounts the public endpoints. Everything under /api and /mcp goes through the middleware chain.
func NewRouter(routes Routes) *chi.Mux {
	r := utils.NewRouter()
	r.Get("/healthz", handlers.GetHandler)

	r.Group(func(api chi.Router) {
		api.Use(routes.Chain.Handler)

		api.Post("/api/v1/materials", routes.Handler.UploadMaterialHandler)
		api.Get("/api/v1/courses/{courseId}/materials", routes.Handler.ListMaterialsHandler)
		api.Get("/api/v1/materials/{materialId}/index", routes.Handler.GetIndexReportHandler)
		api.Delete("/api/v1/materials/{materialId}", routes.Handler.DeleteMaterialHandler)
		api.Post("/api/chat", routes.Handler.ChatHandler)

		if routes.MCP != nil {
			api.Handle("/mcp", routes.MCP)
		}
	})
	return r
}

type Server struct {
	http   *http.Server
	logger *logger_i.Logger
}

func CreateServer(listenAddr string, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:         listenAddr,
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: logger_i.NewLogger("Server"),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("Server is listening at", "address", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			s.logger.Error("Server crashed", "error", err, "addr", s.http.Addr)
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	s.http.SetKeepAlivesEnabled(false)
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Could not shutdown gracefully", "error", err)
		return err
	}
	s.logger.Info("Server stopped gracefully")
	return nil
}
