// Package router wires the HTTP routes to their handlers.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "timetrack_backend/internal/feature/auth/transport/handler"
	categoryhandler "timetrack_backend/internal/feature/category/transport/handler"
	organizationhandler "timetrack_backend/internal/feature/organization/transport/handler"
	permissionhandler "timetrack_backend/internal/feature/permission/transport/handler"
	timeentryhandler "timetrack_backend/internal/feature/timeentry/transport/handler"
	"timetrack_backend/internal/platform/config"
	"timetrack_backend/internal/platform/http/handler"
	jwtmw "timetrack_backend/internal/platform/jwt"
	"timetrack_backend/internal/shared/ratelimiter"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth         *authhandler.AuthHandler
	Category     *categoryhandler.CategoryHandler
	TimeEntry    *timeentryhandler.TimeEntryHandler
	Organization *organizationhandler.OrganizationHandler
	Permission   *permissionhandler.PermissionHandler
}

// NewRouter builds the gin engine with all routes registered under /api/v1.
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.Default()

	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = origins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	// Liveness probe, no auth.
	r.GET("/healthz", handler.Health)

	v1 := r.Group("/api/v1")

	// Sign-in endpoints are throttled to slow down credential guessing.
	signinLimit := ratelimiter.NewRateLimiter(10, time.Minute).Middleware()
	v1.POST("/auth/signin", signinLimit, h.Auth.SignIn)
	v1.POST("/auth/rememberme-signin", signinLimit, h.Auth.RememberMeSignIn)
	v1.POST("/auth/verify", h.Auth.VerifyCode)

	// Everything below requires a bearer token.
	auth := v1.Group("/")
	auth.Use(jwtmw.AuthRequired(cfg.JWTSecret))
	{
		auth.POST("/auth/verification-code", h.Auth.IssueVerificationCode)
		auth.PUT("/users/me/password", h.Auth.ChangePassword)

		auth.GET("/users/:id/permissions", h.Permission.List)
		auth.POST("/users/:id/permissions", h.Permission.Grant)
		auth.DELETE("/users/:id/permissions/:key", h.Permission.Revoke)

		auth.GET("/organizations", h.Organization.List)
		auth.GET("/organizations/:id", h.Organization.Get)

		auth.GET("/categories", h.Category.List)
		auth.GET("/categories/:id", h.Category.Get)
		auth.POST("/categories", h.Category.Create)
		auth.PUT("/categories/:id", h.Category.Update)
		auth.DELETE("/categories/:id", h.Category.Delete)

		auth.GET("/time-entries", h.TimeEntry.List)
		auth.POST("/time-entries", h.TimeEntry.Create)
		auth.PUT("/time-entries/:id", h.TimeEntry.Update)
		auth.DELETE("/time-entries/:id", h.TimeEntry.Delete)
	}

	return r
}
