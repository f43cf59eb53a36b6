package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"usercenter/internal/response"
	"usercenter/internal/service"
)

// AdminRoleHandler handles the admin-only role catalog endpoints.
type AdminRoleHandler struct {
	roleService service.RoleService
}

// NewAdminRoleHandler creates a new admin role handler.
func NewAdminRoleHandler(roleService service.RoleService) *AdminRoleHandler {
	return &AdminRoleHandler{roleService: roleService}
}

// RoleCreateRequest represents a role creation request.
type RoleCreateRequest struct {
	RoleKey     string `json:"roleKey" validate:"required,max=64"`
	RoleName    string `json:"roleName" validate:"required,max=64"`
	Description string `json:"description"`
}

// List godoc
// @Summary List enabled roles
// @Tags admin
// @Produce json
// @Success 200 {object} response.Envelope{data=[]model.Role}
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/role/list [get]
func (h *AdminRoleHandler) List(c echo.Context) error {
	roles, err := h.roleService.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, roles)
}

// Create godoc
// @Summary Create a role
// @Tags admin
// @Accept json
// @Produce json
// @Param request body RoleCreateRequest true "Role data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/role/create [post]
func (h *AdminRoleHandler) Create(c echo.Context) error {
	var req RoleCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.roleService.Create(c.Request().Context(), req.RoleKey, req.RoleName, req.Description)
	if err != nil {
		return err
	}
	return response.OK(c, id)
}
