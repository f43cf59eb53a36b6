package main

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	_ "usercenter/docs" // swagger docs

	"usercenter/internal/config"
	"usercenter/internal/db"
	"usercenter/internal/handler"
	"usercenter/internal/model"
	"usercenter/internal/repository"
	"usercenter/internal/response"
	"usercenter/internal/router"
	"usercenter/internal/service"
	"usercenter/internal/session"
	"usercenter/pkg/logger"
)

// @title User Center API
// @version 1.0
// @description User-account service with session auth and single-role RBAC.
// @host localhost:8080
// @schemes http
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Role{}, &model.UserRole{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	sessions := session.NewManager(redisClient, cfg.Session.CookieName, cfg.Session.TTLSeconds)

	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	userRoleRepo := repository.NewUserRoleRepository(gormDB)

	authService := service.NewAuthService(userRepo, cfg.PasswordSalt)
	userService := service.NewUserService(userRepo, roleRepo, userRoleRepo)
	roleService := service.NewRoleService(roleRepo)
	userRoleService := service.NewUserRoleService(userRepo, roleRepo, userRoleRepo)

	userHandler := handler.NewUserHandler(authService)
	adminUserHandler := handler.NewAdminUserHandler(userService, userRoleService)
	adminRoleHandler := handler.NewAdminRoleHandler(roleService)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = response.NewHTTPErrorHandler(log)

	router.Register(e, sessions, roleRepo, userRoleRepo, userHandler, adminUserHandler, adminRoleHandler)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
