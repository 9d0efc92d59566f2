package main

import (
	"fmt"
	"log/slog"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"timetrack_backend/internal/app/di"
	"timetrack_backend/internal/app/router"
	authadapters "timetrack_backend/internal/feature/auth/adapters"
	authhandler "timetrack_backend/internal/feature/auth/transport/handler"
	authusecase "timetrack_backend/internal/feature/auth/usecase"
	categoryadapters "timetrack_backend/internal/feature/category/adapters"
	categoryhandler "timetrack_backend/internal/feature/category/transport/handler"
	categoryusecase "timetrack_backend/internal/feature/category/usecase"
	organizationadapters "timetrack_backend/internal/feature/organization/adapters"
	organizationhandler "timetrack_backend/internal/feature/organization/transport/handler"
	organizationusecase "timetrack_backend/internal/feature/organization/usecase"
	permissionadapters "timetrack_backend/internal/feature/permission/adapters"
	permissionhandler "timetrack_backend/internal/feature/permission/transport/handler"
	permissionusecase "timetrack_backend/internal/feature/permission/usecase"
	timeentryadapters "timetrack_backend/internal/feature/timeentry/adapters"
	timeentryhandler "timetrack_backend/internal/feature/timeentry/transport/handler"
	timeentryusecase "timetrack_backend/internal/feature/timeentry/usecase"
	"timetrack_backend/internal/platform/config"
	platformdb "timetrack_backend/internal/platform/db"
	jwt "timetrack_backend/internal/platform/jwt"
	platformredis "timetrack_backend/internal/platform/redis"
	"timetrack_backend/internal/platform/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db := platformdb.OpenDB(cfg)

	// Redis is optional; without it category lists are read straight
	// from the database.
	var rdb *redisv9.Client
	if cfg.RedisHost != "" {
		if tmp, err := platformredis.NewRedisClient(cfg); err != nil {
			slog.Warn("redis unavailable, running without cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	sealer, err := token.NewSealer([]byte(cfg.RememberMeKey))
	if err != nil {
		slog.Error("invalid remember-me key", "error", err)
		os.Exit(1)
	}
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)

	// Repositories
	userRepo := authadapters.NewUserPostgres(db)
	codeRepo := authadapters.NewVerificationPostgres(db)
	orgRepo := organizationadapters.NewOrganizationPostgres(db)
	permRepo := permissionadapters.NewPermissionPostgres(db)
	categoryRepo := di.NewCategoryRepository(rdb, db, cfg.CacheTTL)
	categoryChecker := categoryadapters.NewCategoryPostgres(db)
	timeEntryRepo := timeentryadapters.NewTimeEntryPostgres(db)

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo, codeRepo, jwtGen, sealer, cfg.CodeExpiration)
	orgUC := organizationusecase.NewOrganizationUsecase(orgRepo)
	permUC := permissionusecase.NewPermissionUsecase(permRepo, userRepo)
	categoryUC := categoryusecase.NewCategoryUsecase(categoryRepo, orgRepo, userRepo, permRepo)
	timeEntryUC := timeentryusecase.NewTimeEntryUsecase(timeEntryRepo, categoryChecker, userRepo, permRepo)

	// Handlers
	h := router.Handlers{
		Auth:         authhandler.NewAuthHandler(authUC),
		Organization: organizationhandler.NewOrganizationHandler(orgUC),
		Permission:   permissionhandler.NewPermissionHandler(permUC),
		Category:     categoryhandler.NewCategoryHandler(categoryUC),
		TimeEntry:    timeentryhandler.NewTimeEntryHandler(timeEntryUC),
	}

	r := router.NewRouter(cfg, h)

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
