package webserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/truthlens/truthlens-backend/src/config"
	"github.com/truthlens/truthlens-backend/src/factcheck"
)

const (
	apiTitle   = "TruthLens API"
	apiVersion = "1.0.0"
)

// Checker runs the fact-check pipeline for one piece of text.
type Checker interface {
	Check(ctx context.Context, text string) (factcheck.Response, error)
}

// New builds the gin engine serving the fact-check API.
func New(cfg config.Config, checker Checker, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	attachRoutes(r, cfg, checker, logger)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, checker Checker, logger *slog.Logger) {
	// The browser extension calls from arbitrary page origins.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:   []string{"Content-Length", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(RequestID(logger), RequestLogger(), Recovery(), BodyLimit(cfg.MaxRequestBytes))

	h := NewFactCheck(checker)

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/fact-check", h.Check)
	}
}
