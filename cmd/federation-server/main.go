package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccdi/federation/internal/config"
	"github.com/ccdi/federation/internal/domain/entity"
	"github.com/ccdi/federation/internal/domain/file"
	"github.com/ccdi/federation/internal/domain/meta"
	"github.com/ccdi/federation/internal/domain/namespace"
	"github.com/ccdi/federation/internal/domain/sample"
	"github.com/ccdi/federation/internal/domain/subject"
	"github.com/ccdi/federation/internal/platform/apierr"
	"github.com/ccdi/federation/internal/platform/cache"
	"github.com/ccdi/federation/internal/platform/db"
	"github.com/ccdi/federation/internal/platform/graph"
	"github.com/ccdi/federation/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "federation-server",
		Short:   "CCDI Federation metadata API server",
		Version: version(),
	}

	rootCmd.AddCommand(serveCmd(), fieldsCmd(), checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func version() string {
	cfg, err := config.Load()
	if err != nil {
		return "unknown"
	}
	return cfg.Version
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the federation API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "Print the harmonized field allowlist per entity kind",
		Run: func(cmd *cobra.Command, args []string) {
			for _, kind := range graph.Kinds() {
				cmd.Println(kind)
				for _, field := range graph.HarmonizedFields(kind) {
					cmd.Println("  " + field)
				}
			}
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe connectivity to the graph database and the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			graphDB, err := db.NewGraph(ctx, cfg.MemgraphURI, cfg.MemgraphUser, cfg.MemgraphPassword, cfg.MemgraphDatabase)
			if err != nil {
				return fmt.Errorf("graph: %w", err)
			}
			defer graphDB.Close(ctx)
			cmd.Println("graph: ok")

			if !cfg.CacheEnabled {
				cmd.Println("cache: disabled")
				return nil
			}
			logger := zerolog.New(os.Stderr)
			store := cache.New(cache.NewClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB), logger)
			if store.Ping(ctx) {
				cmd.Println("cache: ok")
			} else {
				cmd.Println("cache: unreachable")
			}
			return nil
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	// Graph database
	ctx := context.Background()
	graphDB, err := db.NewGraph(ctx, cfg.MemgraphURI, cfg.MemgraphUser, cfg.MemgraphPassword, cfg.MemgraphDatabase)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to graph database")
	}
	defer graphDB.Close(ctx)
	logger.Info().Str("uri", cfg.MemgraphURI).Msg("connected to graph database")

	// Cache is best effort: an unreachable Redis disables caching, never serving.
	var store entity.Cache
	var cachePinger db.CachePinger
	if cfg.CacheEnabled {
		s := cache.New(cache.NewClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB), logger)
		if s.Ping(ctx) {
			store = s
			cachePinger = s
			logger.Info().Str("host", cfg.RedisHost).Msg("connected to cache")
		} else {
			logger.Warn().Msg("cache unreachable, running without caching")
		}
	} else {
		logger.Info().Msg("caching disabled by configuration")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apierr.Handler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(cfg.RequestTimeoutDuration()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))
	e.Use(echomw.Gzip())

	// API group
	apiV1 := e.Group("/api/v1")
	if cfg.RateLimitEnabled {
		apiV1.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Requests: cfg.RateLimitRequests,
			Window:   cfg.RateLimitWindowDuration(),
		}))
	}

	entityCfg := entity.Config{
		DefaultPerPage:     cfg.DefaultPageSize,
		MaxPerPage:         cfg.MaxPageSize,
		CountTTL:           cfg.CountTTL(),
		SummaryTTL:         cfg.SummaryTTL(),
		ShareLineLevelData: cfg.ShareLineLevelData,
	}

	// -- Register Domain Handlers --

	subject.NewHandler(graphDB, store, entityCfg, logger).RegisterRoutes(apiV1)
	sample.NewHandler(graphDB, store, entityCfg, logger).RegisterRoutes(apiV1)
	file.NewHandler(graphDB, store, entityCfg, logger).RegisterRoutes(apiV1)

	namespace.NewHandler(namespace.NewService(graphDB, cfg.ContactEmail, logger)).RegisterRoutes(apiV1)

	meta.NewHandler(meta.NewService(graphDB, logger), meta.Information{
		Name:         cfg.ServerName,
		Version:      cfg.Version,
		Organization: cfg.OrganizationName,
		ContactEmail: cfg.ContactEmail,
	}).RegisterRoutes(apiV1)

	// Health check and banner
	e.GET("/health", db.HealthHandler(graphDB, cachePinger))
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "CCDI Federation Service",
			"version": cfg.Version,
			"status":  "running",
			"docs":    "/api/v1/info",
		})
	})

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
