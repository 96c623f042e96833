// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infomate/veracity/internal/model"
	"go.uber.org/zap"
)

// Server wraps the gin engine and its http.Server.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and server from config.
func NewServer(cfg model.ServerConfig, handler *Handler, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(CORS(cfg.AllowedOrigins))

	router.GET("/healthz", handler.Health)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimit(cfg.RatePerSecond, cfg.RateBurst))
	v1.POST("/analyze", handler.Analyze)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start blocks serving requests until the server is shut down.
func (s *Server) Start() error {
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
