package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openkitchen/recipeshare/internal/session"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "session_id"

const (
	ctxToken = "session_token"
	ctxEmail = "user_email"
)

// CurrentUser resolves the session cookie against the store and exposes the
// token and, when logged in, the user's email on the request context. Unknown
// or missing cookies leave the request anonymous.
func CurrentUser(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil && token != "" {
			if data, err := store.Get(c.Request.Context(), token); err == nil {
				c.Set(ctxToken, token)
				if data.Email != "" {
					c.Set(ctxEmail, data.Email)
				}
			}
		}
		c.Next()
	}
}

// RequireAuth refuses anonymous requests with a flash message and a redirect
// to the login page. No partial work happens on refused requests.
func RequireAuth(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserEmail(c); !ok {
			Flash(c, store, "You must be logged in to do that.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserEmail returns the authenticated user's email, if any.
func UserEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmail)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// SessionToken returns the request's session token, or "" when the visitor
// has no session yet.
func SessionToken(c *gin.Context) string {
	if v, ok := c.Get(ctxToken); ok {
		return v.(string)
	}
	return ""
}

// SetSessionToken records a freshly created session on the context and sends
// its cookie with the response.
func SetSessionToken(c *gin.Context, token string) {
	c.Set(ctxToken, token)
	c.SetCookie(SessionCookie, token, 0, "/", "", false, true)
}

// Flash records a one-shot message on the request's session, lazily creating
// a session for visitors who do not have one.
func Flash(c *gin.Context, store session.Store, message string) {
	token := SessionToken(c)
	if token == "" {
		t, err := store.Create(c.Request.Context())
		if err != nil {
			log.Printf("create session: %v", err)
			return
		}
		token = t
		SetSessionToken(c, token)
	}
	if err := store.AddFlash(c.Request.Context(), token, message); err != nil {
		log.Printf("add flash: %v", err)
	}
}
