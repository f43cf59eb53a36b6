package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"usercenter/internal/handler"
	"usercenter/internal/middleware"
	"usercenter/internal/repository"
	"usercenter/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessions *session.Manager,
	roleRepo repository.RoleRepository,
	userRoleRepo repository.UserRoleRepository,
	userHandler *handler.UserHandler,
	adminUserHandler *handler.AdminUserHandler,
	adminRoleHandler *handler.AdminRoleHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(sessions.Middleware())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	user := e.Group("/user")
	user.POST("/register", userHandler.Register)
	user.POST("/login", userHandler.Login)
	user.GET("/current", userHandler.Current)
	user.POST("/logout", userHandler.Logout)
	user.POST("/update", userHandler.UpdateMy)
	user.GET("/session/ttl", userHandler.SessionTTL)

	// Admin routes sit behind the authorization gate.
	admin := e.Group("/admin", middleware.AdminOnly(roleRepo, userRoleRepo))
	admin.GET("/role/list", adminRoleHandler.List)
	admin.POST("/role/create", adminRoleHandler.Create)
	admin.GET("/user/search", adminUserHandler.Search)
	admin.POST("/user/delete", adminUserHandler.Delete)
	admin.POST("/user/update", adminUserHandler.Update)
	admin.GET("/user/roles", adminUserHandler.Roles)
	admin.POST("/user/roles/assign", adminUserHandler.AssignRoles)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
