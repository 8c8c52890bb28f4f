// File: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"sportsfest-admin/api"
	"sportsfest-admin/logger"
	"sportsfest-admin/middleware"
)

// ------------------ login handling ------------------

// ShowLoginPage renders the login form, skipping straight to the dashboard
// when the admin already has a live session.
func (a *App) ShowLoginPage(c *gin.Context) {
	if a.liveSession(c) != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// PerformLogin exchanges the posted credentials for a bearer token at the
// site API and opens a fresh admin workspace on success.
func (a *App) PerformLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Error": "Please fill in all fields.",
		})
		return
	}

	// The workspace owns the token store the client writes into, so build
	// the workspace first and log in through its client.
	sid, sess := a.newAdminSession()
	resp, err := sess.Client.Login(c.Request.Context(), username, password)
	if err != nil {
		a.drop(sid)
		var authErr *api.AuthError
		msg := "Login failed, please try again."
		if errors.As(err, &authErr) {
			msg = "Invalid username or password."
		}
		logger.Warnf("PerformLogin: login for %s failed: %v", username, err)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": msg})
		return
	}
	if !resp.Success || resp.Token == "" {
		a.drop(sid)
		msg := resp.Message
		if msg == "" {
			msg = "Invalid username or password."
		}
		logger.Warnf("PerformLogin: invalid login attempt for %s", username)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": msg})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionIDKey, sid)
	if err := session.Save(); err != nil {
		a.drop(sid)
		logger.Errorf("PerformLogin: failed to save session: %v", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error": "Internal error, please try again.",
		})
		return
	}

	logger.Infof("PerformLogin: admin %s logged in", username)
	c.Redirect(http.StatusFound, "/admin")
}

// Logout invalidates the token server-side (best effort), forgets the
// workspace, and sends the admin back to the login page.
func (a *App) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if sid, ok := session.Get(middleware.SessionIDKey).(string); ok && sid != "" {
		if sess := a.lookup(sid); sess != nil {
			sess.Client.Logout(c.Request.Context())
		}
	}
	a.dropSession(c)
	logger.Infof("Logout: admin session cleared")
	c.Redirect(http.StatusFound, "/login")
}
