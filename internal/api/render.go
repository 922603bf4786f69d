package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openkitchen/recipeshare/internal/middleware"
	"github.com/openkitchen/recipeshare/internal/session"
)

// render wraps c.HTML with the fields every template expects: the viewer's
// login state and any pending flash messages.
func render(c *gin.Context, store session.Store, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	email, loggedIn := middleware.UserEmail(c)
	data["LoggedIn"] = loggedIn
	data["UserEmail"] = email
	if token := middleware.SessionToken(c); token != "" {
		if flashes, err := store.PopFlashes(c.Request.Context(), token); err == nil && len(flashes) > 0 {
			data["Flashes"] = flashes
		}
	}
	c.HTML(http.StatusOK, name, data)
}

// capitalizeError turns a lowercase sentinel error into the sentence shown to
// the user, e.g. "email not found" -> "Email not found."
func capitalizeError(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
