package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/agencydesk/agency-platform/internal/api"
	"github.com/agencydesk/agency-platform/internal/api/ws"
	"github.com/agencydesk/agency-platform/internal/core/service"
	"github.com/agencydesk/agency-platform/internal/core/token"
	mongodb "github.com/agencydesk/agency-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/agencydesk/agency-platform/internal/infrastructure/db/redis"
	"github.com/agencydesk/agency-platform/internal/pkg/config"
	"github.com/agencydesk/agency-platform/internal/realtime"
	"github.com/agencydesk/agency-platform/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting agency-platform")

	jwtSecret, insecure, err := cfg.ResolveJWTSecret()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}
	if insecure {
		log.Warn().Msg("JWT_SECRET not set, using insecure development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- mongo ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	// --- redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- repositories ---
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	revoker := redisdb.NewTokenRevoker(rdb)

	// --- realtime pipeline ---
	hub := realtime.NewHub()
	dispatcher := realtime.NewDispatcher(cfg.EventWorkers, hub, log)
	dispatcher.Start(ctx)

	// --- services ---
	tokens := token.NewManager(jwtSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, revoker, log)
	projectService := service.NewProjectService(projectRepo, taskRepo, userRepo, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, dispatcher, log)

	wsServer := ws.NewServer(hub, authService, cfg.CORSOrigins, log)

	// --- http ---
	e := api.NewRouter(api.Deps{
		Mongo:          db,
		Redis:          rdb,
		AuthService:    authService,
		ProjectService: projectService,
		TaskService:    taskService,
		Users:          userRepo,
		WSServer:       wsServer,
		CORSOrigins:    cfg.CORSOrigins,
		Log:            log,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
	log.Info().Msg("stopped")
}
