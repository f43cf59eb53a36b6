package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"usercenter/internal/response"
	"usercenter/internal/service"
	"usercenter/internal/session"
)

// UserHandler handles the self-service user endpoints.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	UserAccount   string `json:"userAccount" validate:"required"`
	UserPassword  string `json:"userPassword" validate:"required"`
	CheckPassword string `json:"checkPassword" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	UserAccount  string `json:"userAccount" validate:"required"`
	UserPassword string `json:"userPassword" validate:"required"`
}

// UpdateMyRequest represents a self-service partial profile update. Absent
// fields are left unchanged.
type UpdateMyRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatarUrl"`
	Gender    *int    `json:"gender"`
}

// Register godoc
// @Summary Register a new user
// @Tags user
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /user/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.authService.Register(c.Request().Context(), req.UserAccount, req.UserPassword, req.CheckPassword)
	if err != nil {
		return err
	}
	return response.OK(c, id)
}

// Login godoc
// @Summary Log in and bind the identity to the session
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope{data=model.SafeUser}
// @Failure 400 {object} response.Envelope
// @Router /user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Login(c.Request().Context(), session.FromContext(c), req.UserAccount, req.UserPassword)
	if err != nil {
		return err
	}
	return response.OK(c, user)
}

// Current godoc
// @Summary Return the logged-in user
// @Tags user
// @Produce json
// @Success 200 {object} response.Envelope{data=model.SafeUser}
// @Failure 401 {object} response.Envelope
// @Router /user/current [get]
func (h *UserHandler) Current(c echo.Context) error {
	user, err := h.authService.Current(c.Request().Context(), session.FromContext(c))
	if err != nil {
		return err
	}
	return response.OK(c, user)
}

// Logout godoc
// @Summary Log out
// @Tags user
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /user/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	ok, err := h.authService.Logout(c.Request().Context(), session.FromContext(c))
	if err != nil {
		return err
	}
	return response.OK(c, ok)
}

// UpdateMy godoc
// @Summary Update the logged-in user's own profile
// @Tags user
// @Accept json
// @Produce json
// @Param request body UpdateMyRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=model.SafeUser}
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /user/update [post]
func (h *UserHandler) UpdateMy(c echo.Context) error {
	var req UpdateMyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), session.FromContext(c), service.ProfilePatch{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
		Gender:    req.Gender,
	})
	if err != nil {
		return err
	}
	return response.OK(c, user)
}

// SessionTTL godoc
// @Summary Return the session inactivity timeout in seconds
// @Tags user
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /user/session/ttl [get]
func (h *UserHandler) SessionTTL(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
	}
	return response.OK(c, sess.MaxIdleSeconds())
}
