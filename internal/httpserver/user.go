package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/abu-huda81/shop_backend/internal/apperr"
	"github.com/abu-huda81/shop_backend/internal/logging"
	"github.com/abu-huda81/shop_backend/internal/service"
	"github.com/abu-huda81/shop_backend/internal/transport"
	"github.com/abu-huda81/shop_backend/internal/util"
)

type UserHTTP struct {
	Svc *service.AuthService
}

func (h *UserHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Svc.Register(ctx, req); err != nil {
		switch {
		case errors.Is(err, apperr.ErrConflict):
			// kept 400 rather than 409 for client compatibility
			l.Warn("register_failed", "status", 400, "reason", "username already exists")
			return echo.NewHTTPError(http.StatusBadRequest, "Username already exists")
		case errors.Is(err, apperr.ErrValidation):
			l.Warn("register_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("register_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "register failed")
		}
	}

	l.Info("register_success", "username", req.Username)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User created successfully",
	})
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			l.Warn("login_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		case errors.Is(err, apperr.ErrUnauthenticated):
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
		}
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
	})
}

func (h *UserHTTP) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_role")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_role_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	// new_role may arrive as a query param or in the body
	newRole := c.QueryParam("new_role")
	if newRole == "" {
		var req transport.UpdateRoleRequest
		if err := c.Bind(&req); err != nil {
			l.Warn("update_role_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		newRole = req.NewRole
	}

	user, err := h.Svc.UpdateRole(ctx, uint(id), newRole)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			l.Warn("update_role_failed", "status", 400, "role", newRole)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid role.")
		case errors.Is(err, apperr.ErrNotFound):
			l.Warn("update_role_failed", "status", 404, "user_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "User not found.")
		default:
			l.Error("update_role_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update role")
		}
	}

	l.Info("update_role_success", "user_id", user.ID, "role", user.Role)
	return c.JSON(http.StatusOK, user)
}

// Delete derives the caller's rights from the guard's verified token; the
// target id is the only client-supplied input.
func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteUser(ctx, uint(id)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			l.Warn("delete_user_failed", "status", 404, "user_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "User not found.")
		}
		l.Error("delete_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete user")
	}

	l.Info("delete_user_success", "user_id", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("User %d deleted successfully.", id),
	})
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	users, err := h.Svc.ListUsers(ctx, offset, limit)
	if err != nil {
		l.Error("list_users_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list users")
	}

	return c.JSON(http.StatusOK, users)
}
