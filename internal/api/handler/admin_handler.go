package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
)

const searchDateLayout = "2006-01-02"

// AdminHandler handles the ADMIN-only user search endpoint.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type userWithTimeResponse struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Show searches USER-role accounts by optional filters, newest first.
//
// @Summary      Search users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        username        query  string  false  "Exact username"
// @Param        email           query  string  false  "Exact email"
// @Param        createdAtStart  query  string  false  "Creation date from (2006-01-02)"
// @Param        createdAtEnd    query  string  false  "Creation date until (2006-01-02)"
// @Param        updatedAtStart  query  string  false  "Update date from (2006-01-02)"
// @Param        updatedAtEnd    query  string  false  "Update date until (2006-01-02)"
// @Success      200  {array}   userWithTimeResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/show [get]
func (h *AdminHandler) Show(c echo.Context) error {
	filter := ports.UserSearchFilter{
		Username: c.QueryParam("username"),
		Email:    c.QueryParam("email"),
	}

	var err error
	if filter.CreatedFrom, err = searchDate(c, "createdAtStart"); err != nil {
		return err
	}
	if filter.CreatedUntil, err = searchDate(c, "createdAtEnd"); err != nil {
		return err
	}
	if filter.UpdatedFrom, err = searchDate(c, "updatedAtStart"); err != nil {
		return err
	}
	if filter.UpdatedUntil, err = searchDate(c, "updatedAtEnd"); err != nil {
		return err
	}

	if err := validRange(filter.CreatedFrom, filter.CreatedUntil, "createdAtEnd should not precede createdAtStart"); err != nil {
		return err
	}
	if err := validRange(filter.UpdatedFrom, filter.UpdatedUntil, "updatedAtEnd should not precede updatedAtStart"); err != nil {
		return err
	}

	users, err := h.adminService.SearchUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	out := make([]userWithTimeResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserWithTimeResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

func newUserWithTimeResponse(u *domain.User) userWithTimeResponse {
	return userWithTimeResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func searchDate(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(searchDateLayout, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be a date formatted as 2006-01-02")
	}
	return t, nil
}

func validRange(from, until time.Time, msg string) error {
	if !from.IsZero() && !until.IsZero() && until.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	}
	return nil
}
