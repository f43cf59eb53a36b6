package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"usercenter/internal/response"
	"usercenter/internal/service"
)

// AdminUserHandler handles the admin-only user management endpoints.
type AdminUserHandler struct {
	userService     service.UserService
	userRoleService service.UserRoleService
}

// NewAdminUserHandler creates a new admin user handler.
func NewAdminUserHandler(userService service.UserService, userRoleService service.UserRoleService) *AdminUserHandler {
	return &AdminUserHandler{userService: userService, userRoleService: userRoleService}
}

// DeleteUserRequest identifies the user to soft-delete.
type DeleteUserRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// AdminUpdateRequest represents an admin-side partial user update. Absent
// fields are left unchanged.
type AdminUpdateRequest struct {
	ID          int64   `json:"id" validate:"required,gt=0"`
	Name        *string `json:"name"`
	UserAccount *string `json:"userAccount"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	AvatarURL   *string `json:"avatarUrl"`
	Gender      *int    `json:"gender"`
	UserRole    *int    `json:"userRole"`
	UserStatus  *int    `json:"userStatus"`
}

// AssignRolesRequest replaces a user's role bindings.
type AssignRolesRequest struct {
	UserID  int64   `json:"userId" validate:"required,gt=0"`
	RoleIDs []int64 `json:"roleIds"`
}

// Search godoc
// @Summary Search users by display name
// @Tags admin
// @Produce json
// @Param username query string false "Name substring"
// @Success 200 {object} response.Envelope{data=[]model.SafeUser}
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/user/search [get]
func (h *AdminUserHandler) Search(c echo.Context) error {
	users, err := h.userService.Search(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return err
	}
	return response.OK(c, users)
}

// Delete godoc
// @Summary Soft-delete a user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body DeleteUserRequest true "User id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/user/delete [post]
func (h *AdminUserHandler) Delete(c echo.Context) error {
	var req DeleteUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.userService.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return response.OK(c, ok)
}

// Update godoc
// @Summary Update any user's fields
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminUpdateRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/user/update [post]
func (h *AdminUserHandler) Update(c echo.Context) error {
	var req AdminUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.userService.AdminUpdate(c.Request().Context(), service.AdminUserPatch{
		ID:          req.ID,
		Name:        req.Name,
		UserAccount: req.UserAccount,
		Email:       req.Email,
		Phone:       req.Phone,
		AvatarURL:   req.AvatarURL,
		Gender:      req.Gender,
		UserRole:    req.UserRole,
		UserStatus:  req.UserStatus,
	})
	if err != nil {
		return err
	}
	return response.OK(c, ok)
}

// Roles godoc
// @Summary List the role ids bound to a user
// @Tags admin
// @Produce json
// @Param userId query int true "User id"
// @Success 200 {object} response.Envelope{data=[]int64}
// @Failure 400 {object} response.Envelope
// @Router /admin/user/roles [get]
func (h *AdminUserHandler) Roles(c echo.Context) error {
	userID, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}

	ids, err := h.userRoleService.ListRoleIDs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, ids)
}

// AssignRoles godoc
// @Summary Replace a user's role bindings (at most one role)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AssignRolesRequest true "User and role ids"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/user/roles/assign [post]
func (h *AdminUserHandler) AssignRoles(c echo.Context) error {
	var req AssignRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.userRoleService.Assign(c.Request().Context(), req.UserID, req.RoleIDs)
	if err != nil {
		return err
	}
	return response.OK(c, ok)
}
