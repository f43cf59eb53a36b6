// Command seed bootstraps the ADMIN role and a first admin account so a fresh
// deployment has someone who can pass the admin gate. Safe to re-run.
package main

import (
	"context"
	"errors"
	"os"

	"gorm.io/gorm"

	"usercenter/internal/config"
	"usercenter/internal/db"
	"usercenter/internal/model"
	"usercenter/internal/repository"
	"usercenter/internal/service"
	"usercenter/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log := logger.Get()

	account := getEnv("SEED_ADMIN_ACCOUNT", "admin")
	password := getEnv("SEED_ADMIN_PASSWORD", "admin12345")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Role{}, &model.UserRole{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	userRoleRepo := repository.NewUserRoleRepository(gormDB)

	adminRoleID, err := ensureAdminRole(ctx, roleRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("ensure admin role")
	}
	log.Info().Int64("roleId", adminRoleID).Msg("admin role ready")

	adminID, err := ensureAdminUser(ctx, userRepo, account, password, cfg.PasswordSalt)
	if err != nil {
		log.Fatal().Err(err).Msg("ensure admin user")
	}
	log.Info().Int64("userId", adminID).Str("account", account).Msg("admin user ready")

	userRoleService := service.NewUserRoleService(userRepo, roleRepo, userRoleRepo)
	if _, err := userRoleService.Assign(ctx, adminID, []int64{adminRoleID}); err != nil {
		log.Fatal().Err(err).Msg("bind admin role")
	}
	log.Info().Msg("seed completed")
}

func ensureAdminRole(ctx context.Context, roles repository.RoleRepository) (int64, error) {
	role, err := roles.FindActiveByKey(ctx, model.AdminRoleKey)
	if err == nil {
		return role.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	created := &model.Role{
		RoleKey:     model.AdminRoleKey,
		RoleName:    "Administrator",
		Description: "full access to the admin endpoints",
		Status:      model.RoleStatusEnabled,
	}
	if err := roles.Create(ctx, created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func ensureAdminUser(ctx context.Context, users repository.UserRepository, account, password, salt string) (int64, error) {
	existing, err := users.FindByAccount(ctx, account)
	if err == nil {
		if existing.UserRole != model.RoleAdmin {
			if err := users.UpdateFields(ctx, existing.ID, map[string]interface{}{"user_role": model.RoleAdmin}); err != nil {
				return 0, err
			}
		}
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	authService := service.NewAuthService(users, salt)
	id, err := authService.Register(ctx, account, password, password)
	if err != nil {
		return 0, err
	}
	if err := users.UpdateFields(ctx, id, map[string]interface{}{"user_role": model.RoleAdmin}); err != nil {
		return 0, err
	}
	return id, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
