package storefront

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/webserver"
)

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (h *handler) login(c echo.Context) error {
	var payload credentialsPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials")
	}
	result := h.env.Users.Login(c.Request().Context(), payload.Username, payload.Password)
	if !result.Success {
		return webserver.Fail(c, http.StatusUnauthorized, "LOGIN_FAILED", result.Error)
	}
	sess, _ := h.env.Users.Session()
	if sess.Offline {
		h.env.Notify.ShowError("Offline Login", "Server unreachable; signed in locally")
	}
	return webserver.OK(c, sess)
}

func (h *handler) register(c echo.Context) error {
	var payload credentialsPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration")
	}
	result := h.env.Users.Register(c.Request().Context(), h.env.Backend, payload.Username, payload.Email, payload.Password)
	// Registration never logs in; the caller is sent back to login.
	return webserver.OK(c, result)
}

func (h *handler) logout(c echo.Context) error {
	h.env.Users.Logout()
	return webserver.OK(c, map[string]interface{}{"logged_out": true})
}

// updateProfile patches the logged-in user's backend profile and folds the
// saved identity back into the local session.
func (h *handler) updateProfile(c echo.Context) error {
	if _, ok := h.env.Users.Session(); !ok {
		return webserver.Fail(c, http.StatusUnauthorized, "NO_SESSION", "Login required")
	}
	patch := map[string]interface{}{}
	if err := c.Bind(&patch); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse profile")
	}
	delete(patch, "id")

	user, err := h.env.Backend.UpdateMe(c.Request().Context(), h.env.Users.Token(), patch)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "BACKEND_ERROR", err.Error())
	}
	h.env.Users.UpdateIdentity(user.Email, user.FullName)
	return webserver.OK(c, user)
}

func (h *handler) session(c echo.Context) error {
	sess, ok := h.env.Users.Session()
	if !ok {
		return webserver.Fail(c, http.StatusUnauthorized, "NO_SESSION", "Not logged in")
	}
	return webserver.OK(c, sess)
}
