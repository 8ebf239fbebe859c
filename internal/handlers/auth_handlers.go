package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockview/internal/forms"
	"stockview/internal/notify"
	"stockview/internal/session"
	"stockview/internal/store"
)

// AuthHandlers serves the login and register screens and the logout action.
type AuthHandlers struct {
	sessions     *session.Controller
	store        *store.InventoryStore
	loginForm    *forms.LoginForm
	registerForm *forms.RegisterForm
	flash        *notify.FlashQueue
}

// NewAuthHandlers creates a new auth handlers instance.
func NewAuthHandlers(
	sessions *session.Controller,
	inv *store.InventoryStore,
	loginForm *forms.LoginForm,
	registerForm *forms.RegisterForm,
	flash *notify.FlashQueue,
) *AuthHandlers {
	return &AuthHandlers{
		sessions:     sessions,
		store:        inv,
		loginForm:    loginForm,
		registerForm: registerForm,
		flash:        flash,
	}
}

type authPage struct {
	Authenticated bool
	Username      string
	FormUsername  string
	Notifications []notify.Notification
}

// LoginPage renders the login form.
func (h *AuthHandlers) LoginPage(c echo.Context) error {
	if h.sessions.IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "login.html", authPage{
		FormUsername:  h.loginForm.Username(),
		Notifications: h.flash.Drain(),
	})
}

// Login submits the login form. Success enters the authenticated home;
// failure re-renders the form with the draft username kept.
func (h *AuthHandlers) Login(c echo.Context) error {
	h.loginForm.SetFields(c.FormValue("username"), c.FormValue("password"))

	if err := h.loginForm.Submit(c.Request().Context()); err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterPage renders the registration form.
func (h *AuthHandlers) RegisterPage(c echo.Context) error {
	if h.sessions.IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "register.html", authPage{
		FormUsername:  h.registerForm.Username(),
		Notifications: h.flash.Drain(),
	})
}

// Register submits the registration form. Success lands on the login page.
func (h *AuthHandlers) Register(c echo.Context) error {
	h.registerForm.SetFields(c.FormValue("username"), c.FormValue("password"))

	if err := h.registerForm.Submit(c.Request().Context()); err != nil {
		return c.Redirect(http.StatusSeeOther, "/register")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Logout clears the session and list state and returns to the login page.
func (h *AuthHandlers) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		h.flash.Error("Failed to log out, please try again.")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	h.store.Reset()
	return c.Redirect(http.StatusSeeOther, "/login")
}
