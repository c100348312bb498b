package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sathvik2377/timetable-api/api/swagger"
	"github.com/sathvik2377/timetable-api/internal/clipboard"
	"github.com/sathvik2377/timetable-api/internal/handler"
	internalmiddleware "github.com/sathvik2377/timetable-api/internal/middleware"
	"github.com/sathvik2377/timetable-api/internal/models"
	"github.com/sathvik2377/timetable-api/internal/service"
	"github.com/sathvik2377/timetable-api/internal/solver"
	"github.com/sathvik2377/timetable-api/pkg/cache"
	"github.com/sathvik2377/timetable-api/pkg/config"
	"github.com/sathvik2377/timetable-api/pkg/logger"
	corsmiddleware "github.com/sathvik2377/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sathvik2377/timetable-api/pkg/middleware/requestid"
	"github.com/sathvik2377/timetable-api/pkg/storage"
)

// @title Timetable API
// @version 1.0.0
// @description Variant-based timetable lifecycle service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, running without shared cache", "error", err)
		redisClient = nil
	}

	var solverClient solver.Client
	if cfg.Solver.UseMock {
		logr.Sugar().Infow("using mock solver", "seed", cfg.Solver.MockSeed)
		solverClient = solver.NewMockSolver(cfg.Solver.MockSeed)
	} else {
		solverClient = solver.NewHTTPClient(cfg.Solver.BaseURL, cfg.Solver.RequestTimeout, logr)
	}

	var clipboardStore clipboard.Store
	if cfg.Clipboard.UseRedis && redisClient != nil {
		clipboardStore = clipboard.NewRedisStore(redisClient, cfg.Clipboard.Key)
	} else {
		clipboardStore = clipboard.NewMemoryStore()
	}

	exportStorage, err := storage.NewArtifactStore(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	feasibilitySvc := service.NewFeasibilityService(nil, logr)
	cacheSvc := service.NewCacheService(redisClient, 0, logr)
	authSvc := service.NewAuthService(cfg.JWT.Secret, logr)

	var sessionSvc *service.VariantSessionService
	metricsSvc := service.NewMetricsService(func() float64 {
		if sessionSvc == nil {
			return 0
		}
		return float64(sessionSvc.ActiveSessions())
	})
	sessionSvc = service.NewVariantSessionService(
		solverClient,
		feasibilitySvc,
		cacheSvc,
		metricsSvc,
		nil,
		logr,
		service.VariantSessionConfig{
			SessionTTL:      cfg.Sessions.TTL,
			DefaultVariants: cfg.Solver.DefaultVariants,
		},
	)

	editorSvc := service.NewGridEditorService(sessionSvc, clipboardStore, nil, logr)
	exportSvc := service.NewExportService(editorSvc, exportStorage, signer, metricsSvc, nil, logr, service.ExportConfig{
		APIPrefix:       cfg.APIPrefix,
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
		Workers:         cfg.Exports.WorkerConcurrency,
	})
	exportSvc.Start(ctx)
	defer exportSvc.Stop()

	feasibilityHandler := handler.NewFeasibilityHandler(feasibilitySvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	editorHandler := handler.NewEditorHandler(editorSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// Signed download links work without a bearer token.
	api.GET("/exports/download/:token", exportHandler.Download)

	authed := api.Group("")
	authed.Use(internalmiddleware.JWT(authSvc))

	authed.POST("/feasibility/check", feasibilityHandler.Check)

	plannerOnly := internalmiddleware.RequireRoles(models.RoleAdmin, models.RolePlanner)

	sessions := authed.Group("/sessions")
	{
		sessions.POST("", plannerOnly, sessionHandler.Create)
		sessions.GET("/:id", sessionHandler.Get)
		sessions.POST("/:id/generate", plannerOnly, sessionHandler.Generate)
		sessions.POST("/:id/regenerate", plannerOnly, sessionHandler.Regenerate)
		sessions.POST("/:id/select", plannerOnly, sessionHandler.Select)
		sessions.POST("/:id/commit", plannerOnly, sessionHandler.Commit)
		sessions.GET("/:id/variants/:variantId", sessionHandler.GetVariant)
		sessions.GET("/:id/official", sessionHandler.Official)

		sessions.GET("/:id/editor", editorHandler.State)
		sessions.PUT("/:id/editor/mode", plannerOnly, editorHandler.SetViewMode)
		sessions.POST("/:id/editor/move", plannerOnly, editorHandler.Move)
		sessions.POST("/:id/editor/copy", plannerOnly, editorHandler.Copy)
		sessions.POST("/:id/editor/paste", plannerOnly, editorHandler.Paste)
		sessions.POST("/:id/editor/delete", plannerOnly, editorHandler.Delete)
		sessions.POST("/:id/editor/reset", plannerOnly, editorHandler.Reset)

		sessions.POST("/:id/export", exportHandler.Create)
	}

	authed.GET("/exports/:exportId", exportHandler.Status)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
