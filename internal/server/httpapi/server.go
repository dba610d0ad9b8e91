package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neogulmap/zonemap/internal/logging"
)

// Server is the public HTTP endpoint with graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

// Router assembles the route table. Write operations and account routes
// sit behind token authentication; reads are public.
func Router(h *Handler, secret []byte, logger logging.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestLogger(logger))
	r.Use(Metrics())

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/zones", h.ListZones)
	r.Get("/zones/search", h.SearchZones)
	r.Get("/zones/{id}", h.GetZone)
	r.Get("/images/{filename}", h.GetImage)

	r.Post("/users", h.RegisterUser)
	r.Post("/auth/refresh", h.RefreshToken)

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(secret))

		r.Post("/zones", h.CreateZone)
		r.Put("/zones/{id}", h.UpdateZone)
		r.Delete("/zones/{id}", h.DeleteZone)

		r.Get("/users/me", h.GetMe)
		r.Put("/users/me", h.UpdateMe)
		r.Delete("/users/me", h.DeleteMe)

		r.Delete("/images/{filename}", h.DeleteImage)
	})

	return r
}

// NewServer wraps the router in an http.Server with conservative timeouts.
func NewServer(addr string, router chi.Router, logger logging.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger.With("component", "httpserver"),
	}
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info(shutdownCtx, "http server shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}
