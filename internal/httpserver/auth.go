package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ZairBalam/soundshop/internal/events"
	"github.com/ZairBalam/soundshop/internal/identity"
	"github.com/ZairBalam/soundshop/internal/logging"
)

type AuthHTTP struct {
	Ledger *identity.Ledger
	Events *events.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		l.Warn("register_error", "status", 400, "reason", "missing fields")
		return c.JSON(http.StatusBadRequest, "email, password and name required")
	}

	if err := h.Ledger.Register(req.Email, req.Password, req.Name); err != nil {
		if errors.Is(err, identity.ErrAlreadyExists) {
			l.Warn("register_error", "status", 409, "email", req.Email)
			return c.JSON(http.StatusConflict, "user already exists")
		}
		l.Error("register_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "user_registered", req.Email)
	l.Info("user registered", "email", req.Email)

	user, _ := h.Ledger.Current()
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Ledger.Login(req.Email, req.Password); err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			l.Warn("login_error", "status", 401, "email", req.Email)
			return c.JSON(http.StatusUnauthorized, "invalid email or password")
		}
		l.Error("login_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "user_logged_in", req.Email)
	l.Info("user logged in", "email", req.Email)

	user, _ := h.Ledger.Current()
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if err := h.Ledger.Logout(); err != nil {
		l.Error("logout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("user logged out")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	user, ok := h.Ledger.Current()
	if !ok {
		return c.JSON(http.StatusUnauthorized, "not authenticated")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) publish(c echo.Context, eventType, email string) {
	ctx := c.Request().Context()
	event := map[string]any{
		"type":  eventType,
		"email": email,
	}
	if err := h.Events.Publish(ctx, events.TopicUserEvents, email, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "error", err)
	}
}
