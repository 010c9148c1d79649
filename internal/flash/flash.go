// Package flash carries a one-shot message from a redirecting request to the next page render.
// The message lives in a short-lived cookie and is cleared as soon as it has been read.
package flash

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/contacts-web/internal/config"
)

// Flash reads and writes the flash cookie.
type Flash struct {
	cookie string
	maxAge int
}

// New returns a Flash using the configured cookie name and lifetime.
func New(cfg config.FlashConfig) *Flash {
	return &Flash{cookie: cfg.Cookie, maxAge: cfg.MaxAge}
}

// Set stores the message for the next request.
func (f *Flash) Set(c *gin.Context, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(f.cookie, message, f.maxAge, "/", "", false, true)
}

// Pop returns the pending message, if any, and clears it.
func (f *Flash) Pop(c *gin.Context) string {
	message, err := c.Cookie(f.cookie)
	if err != nil || message == "" {
		return ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(f.cookie, "", -1, "/", "", false, true)
	return message
}
