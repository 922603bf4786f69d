package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openkitchen/recipeshare/internal/middleware"
	"github.com/openkitchen/recipeshare/internal/service"
	"github.com/openkitchen/recipeshare/internal/session"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions session.Store
}

func NewAuthHandler(auth *service.AuthService, sessions session.Store) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// ShowLogin renders the login form. Logged-in visitors go straight home.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if _, ok := middleware.UserEmail(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, h.sessions, "login.html", nil)
}

// Login authenticates the submitted credentials and establishes the session
// identity. The two failure modes render distinct messages on the form.
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.auth.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotFound) || errors.Is(err, service.ErrWrongPassword) {
			render(c, h.sessions, "login.html", gin.H{"Error": capitalizeError(err)})
			return
		}
		log.Printf("login failed: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.establishSession(c, user.Email); err != nil {
		log.Printf("establish session: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	middleware.Flash(c, h.sessions, "Logged in successfully.")
	c.Redirect(http.StatusFound, "/")
}

// ShowSignup renders the registration form. Logged-in visitors go home with
// a notice.
func (h *AuthHandler) ShowSignup(c *gin.Context) {
	if _, ok := middleware.UserEmail(c); ok {
		middleware.Flash(c, h.sessions, "You are already logged in.")
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, h.sessions, "signup.html", nil)
}

// Signup creates an account and logs the new user in. Validation failures
// re-render the form with a message and mutate nothing.
func (h *AuthHandler) Signup(c *gin.Context) {
	email := c.PostForm("email")
	emailConfirm := c.PostForm("email_confirm")
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.auth.Signup(c.Request.Context(), email, emailConfirm, username, password)
	if err != nil {
		if errors.Is(err, service.ErrEmailMismatch) || errors.Is(err, service.ErrEmailTaken) {
			render(c, h.sessions, "signup.html", gin.H{"Error": capitalizeError(err)})
			return
		}
		log.Printf("signup failed: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.establishSession(c, user.Email); err != nil {
		log.Printf("establish session: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	middleware.Flash(c, h.sessions, "Account created successfully.")
	c.Redirect(http.StatusFound, "/")
}

// Account shows the logged-in user's details. The route sits behind
// RequireAuth, so an identity is always present here.
func (h *AuthHandler) Account(c *gin.Context) {
	email, _ := middleware.UserEmail(c)

	user, err := h.auth.GetUser(c.Request.Context(), email)
	if err != nil {
		middleware.Flash(c, h.sessions, "Account not found.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	render(c, h.sessions, "account.html", gin.H{
		"Email":    user.Email,
		"Username": user.Username,
	})
}

// Logout clears the session identity and sends the visitor home.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.sessions.ClearIdentity(c.Request.Context(), token); err != nil {
			log.Printf("clear identity: %v", err)
		}
	}
	middleware.Flash(c, h.sessions, "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) establishSession(c *gin.Context, email string) error {
	token := middleware.SessionToken(c)
	if token == "" {
		t, err := h.sessions.Create(c.Request.Context())
		if err != nil {
			return err
		}
		token = t
		middleware.SetSessionToken(c, token)
	}
	return h.sessions.SetIdentity(c.Request.Context(), token, email)
}
