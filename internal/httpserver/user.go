package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/logging"
	"github.com/stockroom/inventory-api/internal/service"
)

type UserHTTP struct {
	Svc *service.AuthService
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		l.Error("list_users_failed", "status", 500, "error", err)
		return httpError(err, "user not found")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	actorID, _ := c.Get("user_id").(uint)
	if err := h.Svc.DeleteUser(ctx, actorID, id); err != nil {
		l.Warn("delete_user_failed", "user_id", id, "error", err)
		return httpError(err, "user not found")
	}

	l.Info("delete_user_success", "user_id", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "user deleted",
		"id":      id,
	})
}
