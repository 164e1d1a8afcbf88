package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	attend "go.workpoint.io/attend"
	api "go.workpoint.io/attend/api/echo"
	"go.workpoint.io/attend/cache"
	redicache "go.workpoint.io/attend/cache/redis"
	"go.workpoint.io/attend/config"
	applog "go.workpoint.io/attend/log"
	"go.workpoint.io/attend/mongodb"
	"go.workpoint.io/attend/tracing"
)

var (
	appLogger      applog.Logger
	tracerProvider *sdktrace.TracerProvider
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logLevel, parseErr := zerolog.ParseLevel(cfg.LogLevel)
	if parseErr != nil {
		logLevel = zerolog.InfoLevel
	}
	appLogger = applog.NewZerologAdapter(logLevel, cfg.LogPretty)

	ctx := context.Background()
	appLogger.Info(ctx, "starting attend server", applog.Fields{
		"http_port":    cfg.HTTPPort,
		"mongo_db":     cfg.MongoDBName,
		"daily_logout": cfg.DailyLogoutAt,
	})

	tp, err := tracing.InitTracerProvider(cfg.OtelServiceName)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize tracer provider", err, nil)
	}
	tracerProvider = tp

	if err := mongodb.Init(ctx, cfg.MongoURI, cfg.MongoDBName); err != nil {
		appLogger.Fatal(ctx, "failed to initialize MongoDB", err, nil)
	}
	db := mongodb.DB()

	// Repositories
	userRepo, err := mongodb.NewUserRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize user repository", err, nil)
	}
	sessionRepo, err := mongodb.NewSessionRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize session repository", err, nil)
	}
	attendanceRepo, err := mongodb.NewAttendanceRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize attendance repository", err, nil)
	}
	leaveRepo, err := mongodb.NewLeaveRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize leave repository", err, nil)
	}
	allowedIPRepo, err := mongodb.NewAllowedIPRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize allow-list repository", err, nil)
	}

	// Allow-list cache: redis when configured, in-memory otherwise.
	var allowCache cache.AllowlistCache
	if cfg.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		allowCache = redicache.NewAllowlistCache(rdb, cfg.OtelServiceName)
	} else {
		allowCache = cache.NewMemoryAllowlistCache()
	}
	defer allowCache.Close()

	// Services
	boundary, err := attend.NewBoundaryPolicy(cfg.DailyLogoutAt)
	if err != nil {
		appLogger.Fatal(ctx, "invalid DAILY_LOGOUT_AT", err, nil)
	}
	tokenService := attend.NewTokenService(
		[]byte(cfg.AccessTokenKey), []byte(cfg.RefreshTokenKey),
		config.ParseTTL(cfg.AccessTokenTTL, config.DefaultAccessTokenTTL),
		config.ParseTTL(cfg.RefreshTokenTTL, config.DefaultRefreshTokenTTL),
		boundary, nil,
	)
	sessionService := attend.NewSessionService(userRepo, sessionRepo, tokenService, boundary, nil)
	allowlistService := attend.NewAllowlistService(allowedIPRepo, allowCache,
		config.ParseTTL(cfg.AllowlistCacheTTL, config.DefaultAllowlistTTL), nil)
	attendanceService := attend.NewAttendanceService(attendanceRepo, allowlistService, nil)
	leaveService := attend.NewLeaveService(leaveRepo, cfg.AnnualLeaveDays, nil)
	userService := attend.NewUserService(userRepo, nil, nil)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	httpAPI := api.NewAPI(sessionService, attendanceService, leaveService, allowlistService, userService, cfg.AnnualLeaveDays)
	httpAPI.RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.HTTPPort); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(ctx, "http server failed", err, nil)
		}
	}()
	appLogger.Info(ctx, "http server listening", applog.Fields{"port": cfg.HTTPPort})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info(ctx, "shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "http shutdown failed", err, nil)
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "tracer shutdown failed", err, nil)
	}
	mongodb.Close(shutdownCtx)
}
