package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/webserver"
)

func (h *handler) listUsers(c echo.Context) error {
	users, err := h.env.Backend.ListUsers(c.Request().Context())
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "BACKEND_ERROR", err.Error())
	}
	return webserver.OK(c, users)
}

func (h *handler) deleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
	}
	if err := h.env.Backend.DeleteUser(c.Request().Context(), id); err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "BACKEND_ERROR", err.Error())
	}
	return webserver.OK(c, map[string]interface{}{"id": id})
}
