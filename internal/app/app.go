// Package app wires configuration, storage, middleware and feature modules
// into the HTTP server.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/config"
	"github.com/alwasl/core/internal/database"
	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/pkg/cron"
	jwtpkg "github.com/alwasl/core/internal/pkg/jwt"
	"github.com/alwasl/core/internal/pkg/mail"
	"github.com/alwasl/core/internal/pkg/redis"
)

// App is the assembled application.
type App struct {
	cfg    *config.AppConfig
	log    *zap.Logger
	db     *gorm.DB
	rdb    *redis.Client
	mailer *mail.Sender
	cron   *cron.Scheduler
	engine *gin.Engine
	server *http.Server
}

// New builds the application from config.
func New(cfg *config.AppConfig, log *zap.Logger) (*App, error) {
	jwtpkg.SetSecret(cfg.JWTSecret)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database, cfg.IsDev())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = redis.Connect(cfg.RedisURL)
		if err != nil {
			// Rate limiting degrades to open; everything else works.
			log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			rdb = nil
		}
	}

	a := &App{
		cfg:    cfg,
		log:    log,
		db:     db,
		rdb:    rdb,
		mailer: mail.NewSender(cfg.Mail),
		cron:   cron.New(),
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.Logger(log))
	engine.Use(corsMiddleware(cfg.AllowedOrigins, cfg.IsDev()))
	a.engine = engine

	a.registerRoutes()
	a.registerJobs()

	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// Run serves HTTP until the context is cancelled, then drains connections.
func (a *App) Run(ctx context.Context) error {
	cronCtx, cancelCron := context.WithCancel(ctx)
	defer cancelCron()
	a.cron.Start(cronCtx)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", zap.String("addr", a.server.Addr), zap.String("env", a.cfg.Env))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

// DB exposes the database handle, used by integration tooling.
func (a *App) DB() *gorm.DB { return a.db }
