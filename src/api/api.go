package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/truthlens/truthlens-backend/src/ai/core"
	_ "github.com/truthlens/truthlens-backend/src/ai/providers"
	"github.com/truthlens/truthlens-backend/src/api/webserver"
	"github.com/truthlens/truthlens-backend/src/config"
	"github.com/truthlens/truthlens-backend/src/factcheck"
	"github.com/truthlens/truthlens-backend/src/logging"
	"github.com/truthlens/truthlens-backend/src/search/exa"
	"github.com/truthlens/truthlens-backend/src/webclient"
	"github.com/truthlens/truthlens-backend/src/workers"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.Init(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	setGinMode(cfg.GinMode, logger)

	model := core.ResolveModelName(cfg.AIProvider, cfg.AIModel)
	baseURL := ""
	if cfg.AIProvider == "openai" {
		baseURL = cfg.OpenAIBaseURL
	}
	llm, err := core.NewClient(core.FactoryConfig{
		Provider:    cfg.AIProvider,
		Model:       model,
		Temperature: cfg.AITemperature,
		Timeout:     cfg.AITimeout,
		GeminiKey:   cfg.GeminiKey,
		OpenAIKey:   cfg.OpenAIKey,
		BaseURL:     baseURL,
	})
	if err != nil {
		logger.Error("ai client init failed", "provider", cfg.AIProvider, "err", err)
		os.Exit(1)
	}

	engine := exa.NewClient(cfg.ExaKey,
		exa.WithEndpoint(cfg.ExaEndpoint),
		exa.WithHTTPClient(webclient.NewDefault(cfg.SearchTimeout)),
		exa.WithRetry(cfg.SearchRetries, time.Second),
	)

	pool := workers.NewPool(cfg.WorkerCount, logger)
	pool.Start()
	defer pool.Stop()

	svc := factcheck.NewService(llm, engine, pool, core.Options{Model: model, Temperature: cfg.AITemperature})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           webserver.New(cfg, svc, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("TruthLens API listening",
			"addr", httpSrv.Addr,
			"provider", llm.Name(),
			"model", model,
			"search", engine.Name(),
			"workers", pool.Size(),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "err", err)
		pool.Stop()
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func setGinMode(mode string, logger *slog.Logger) {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		logger.Warn("unknown GIN_MODE, using release", "mode", mode)
		gin.SetMode(gin.ReleaseMode)
	}
}
