package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/webserver"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handler) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials")
	}

	result := h.env.Admin.Login(c.Request().Context(), payload.Username, payload.Password)
	if !result.Success {
		return webserver.Fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", result.Error)
	}

	token, err := webserver.IssueToken(h.env.Config.Web.JwtSecret, payload.Username, "super_admin", 2*time.Hour)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token")
	}
	sess, _ := h.env.Admin.Session()
	return webserver.OK(c, map[string]interface{}{
		"token": token,
		"admin": sess,
	})
}

func (h *handler) session(c echo.Context) error {
	sess, ok := h.env.Admin.Session()
	if !ok {
		return webserver.Fail(c, http.StatusUnauthorized, "NO_SESSION", "Admin session expired")
	}
	state, _ := h.env.Admin.State()
	return webserver.OK(c, map[string]interface{}{
		"admin": sess,
		"state": state.String(),
	})
}

// refreshSession resets the idle clock without re-authenticating.
func (h *handler) refreshSession(c echo.Context) error {
	h.env.Admin.Touch()
	return webserver.OK(c, map[string]interface{}{"refreshed": true})
}

func (h *handler) logout(c echo.Context) error {
	h.env.Admin.Logout()
	return webserver.OK(c, map[string]interface{}{"logged_out": true})
}
