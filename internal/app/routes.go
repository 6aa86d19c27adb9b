package app

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/modules/auth"
	"github.com/alwasl/core/internal/modules/content/article"
	"github.com/alwasl/core/internal/modules/content/event"
	"github.com/alwasl/core/internal/modules/directory"
	"github.com/alwasl/core/internal/modules/forum/ban"
	"github.com/alwasl/core/internal/modules/forum/category"
	"github.com/alwasl/core/internal/modules/forum/reply"
	"github.com/alwasl/core/internal/modules/forum/thread"
	"github.com/alwasl/core/internal/modules/newsletter"
	"github.com/alwasl/core/internal/modules/system/health"
	"github.com/alwasl/core/internal/modules/user"
	"github.com/alwasl/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	api := a.engine.Group("/api/v1")
	api.Use(middleware.RateLimit(a.rdb, "api", 300, time.Minute))

	api.GET("", func(c *gin.Context) {
		response.OK(c, gin.H{"name": "alwasl-core", "env": a.cfg.Env})
	})
	api.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "pong"})
	})

	authMW := middleware.Auth(a.db)
	optionalMW := middleware.OptionalAuth(a.db)

	health.NewHandler(a.db).RegisterRoutes(api)

	authSvc := auth.NewService(a.db, a.mailer, a.cfg.AdminEmail, a.log)
	auth.NewHandler(authSvc).RegisterRoutes(api, authMW)

	banSvc := ban.NewService(a.db)
	ban.NewHandler(banSvc).RegisterRoutes(api, authMW)

	category.NewHandler(category.NewService(a.db)).RegisterRoutes(api, authMW, optionalMW)
	thread.NewHandler(thread.NewService(a.db, banSvc)).RegisterRoutes(api, authMW)
	reply.NewHandler(reply.NewService(a.db, banSvc)).RegisterRoutes(api, authMW)

	directory.NewHandler(directory.NewService(a.db)).RegisterRoutes(api, authMW)
	article.NewHandler(article.NewService(a.db)).RegisterRoutes(api, authMW)
	event.NewHandler(event.NewService(a.db)).RegisterRoutes(api, authMW)

	nlSvc := newsletter.NewService(a.db, a.mailer, a.cfg.BaseURL, a.log)
	newsletter.NewHandler(nlSvc).RegisterRoutes(api, authMW)

	user.NewHandler(user.NewService(a.db)).RegisterRoutes(api, authMW)

	a.engine.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	a.engine.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})
}
