// Package server exposes the error classifier over HTTP. Clients post the raw
// value they caught and receive the normalized error, ready for display.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/tansive/walleterrors/internal/common/httpx"
	"github.com/tansive/walleterrors/internal/common/middleware"
	"github.com/tansive/walleterrors/internal/config"
	"github.com/tansive/walleterrors/internal/parseerror"
)

// ClassifierServer provides the HTTP server for the classifier.
type ClassifierServer struct {
	Router *chi.Mux // HTTP router for request handling

	parser *parseerror.Parser
	cfg    config.ServerConfig
}

// CreateNewServer creates a ClassifierServer that classifies with p.
func CreateNewServer(p *parseerror.Parser, cfg config.ServerConfig) (*ClassifierServer, error) {
	if p == nil {
		p = parseerror.NewParser()
	}
	if _, err := cfg.GetRequestTimeout(); err != nil {
		return nil, err
	}
	s := &ClassifierServer{
		Router: chi.NewRouter(),
		parser: p,
		cfg:    cfg,
	}
	return s, nil
}

// MountHandlers sets up all HTTP routes and middleware for the server.
func (s *ClassifierServer) MountHandlers() {
	s.Router.Use(middleware.RequestLogger)
	s.Router.Use(middleware.PanicHandler)
	if s.cfg.HandleCORS {
		s.Router.Use(s.HandleCORS)
	}
	s.Router.Use(middleware.SetTimeout(s.cfg.GetRequestTimeoutOrDefault()))
	s.mountResourceHandlers(s.Router)
}

func (s *ClassifierServer) mountResourceHandlers(r chi.Router) {
	r.Post("/classify", httpx.WrapHttpRsp(s.classify))
	r.Get("/validation-handlers", httpx.WrapHttpRsp(s.listValidationHandlers))
	r.Get("/version", s.getVersion)
	r.Get("/ready", s.getReadiness)
}

// GetVersionRsp represents the response for version information.
type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

func (s *ClassifierServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "Wallet Errors Server: " + Version,
		ApiVersion:    ApiVersion,
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

func (s *ClassifierServer) getReadiness(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("Readiness check")
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// HandleCORS provides CORS middleware for cross-origin requests.
func (s *ClassifierServer) HandleCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", middleware.RequestIDHeader, ApiVersionHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, middleware.TimeoutHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *ClassifierServer) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server started")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	}

	// Give outstanding requests 5 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("could not stop server gracefully")
		return srv.Close()
	}
	log.Info().Msg("server stopped")
	return nil
}
