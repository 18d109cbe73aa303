package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openboard/board-api/internal/api/metrics"
	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
)

// UserHandler handles the user lifecycle endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username"`
	Role     string `json:"role" validate:"required,oneof=USER ADMIN"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type signInResponse struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SignUp registers a new account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users/sign-up [post]
func (h *UserHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.SignUp(c.Request().Context(), ports.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	})
}

// SignIn verifies credentials and returns a token pair.
//
// @Summary      Sign in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/sign-in [post]
func (h *UserHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := h.userService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(signInResult(err)).Inc()
		return err
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()

	return c.JSON(http.StatusOK, signInResponse{
		Email:        user.Email,
		Username:     user.Username,
		Role:         user.Role,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh rotates the caller's refresh token and returns a new pair.
// The Authorization header carries the refresh token being exchanged.
//
// @Summary      Refresh the token pair
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  refreshResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/users/refresh [post]
func (h *UserHandler) Refresh(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	presented, err := bearerToken(c)
	if err != nil {
		return err
	}

	pair, err := h.userService.Refresh(c.Request().Context(), principal.ID, presented)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()

	return c.JSON(http.StatusOK, refreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Delete removes the caller's account and everything it owns.
//
// @Summary      Delete own account
// @Tags         users
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  map[string]string
// @Router       /api/users [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.userService.Delete(c.Request().Context(), principal.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func signInResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidPassword):
		return "invalid_password"
	case errors.Is(err, domain.ErrEmailNotFound):
		return "email_not_found"
	case errors.Is(err, domain.ErrTooManySignInAttempts):
		return "throttled"
	default:
		return "error"
	}
}
