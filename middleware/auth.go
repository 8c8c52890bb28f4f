// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"sportsfest-admin/logger"
)

// SessionIDKey is the cookie-session key holding the admin workspace id.
const SessionIDKey = "sid"

// -------------- authentication middleware --------------

// AuthRequired ensures the browser carries an admin workspace id. Token
// presence and expiry are checked by the page controllers, which own the
// workspace the id points at; this filter only blocks anonymous requests.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	sid, ok := session.Get(SessionIDKey).(string)
	if !ok || sid == "" {
		logger.Warnf("AuthRequired: no admin session, redirecting %s to /login", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}
