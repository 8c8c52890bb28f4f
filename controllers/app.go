// Package controllers provides the HTTP handlers for the admin console.
// File: controllers/app.go
package controllers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sportsfest-admin/api"
	"sportsfest-admin/commit"
	"sportsfest-admin/config"
	"sportsfest-admin/editor"
	"sportsfest-admin/live"
	"sportsfest-admin/logger"
	"sportsfest-admin/middleware"
	"sportsfest-admin/models"
)

// AdminSession is the server-side workspace for one logged-in admin: their
// API client (with its own token store) plus the editing state and commit
// flow for each resource page.
type AdminSession struct {
	Tokens *api.MemoryTokenStore
	Client *api.Client

	Contact     *editor.Singleton[models.Contact]
	ContactFlow *commit.Flow

	Gallery     *editor.Workspace[models.GalleryItem]
	GalleryFlow *commit.Flow

	Results     *editor.Workspace[models.MatchResult]
	ResultsFlow *commit.Flow

	Schedule     *editor.Workspace[models.ScheduledMatch]
	ScheduleFlow *commit.Flow

	// Read-only roster backing the team selects.
	mu    sync.Mutex
	teams []models.Team
}

// SetTeams caches the roster fetched alongside the results/schedule pages.
func (s *AdminSession) SetTeams(teams []models.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = append([]models.Team(nil), teams...)
}

// Teams returns the cached roster.
func (s *AdminSession) Teams() []models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Team(nil), s.teams...)
}

// App wires the controllers together: configuration, the live-update hub,
// and the registry of admin sessions keyed by the sid cookie.
type App struct {
	cfg *config.Config
	hub *live.Hub

	mu       sync.Mutex
	sessions map[string]*AdminSession
}

// NewApp creates the controller set.
func NewApp(cfg *config.Config, hub *live.Hub) *App {
	return &App{
		cfg:      cfg,
		hub:      hub,
		sessions: make(map[string]*AdminSession),
	}
}

// ---------------- session registry ----------------

// newAdminSession builds a fresh workspace and registers it.
func (a *App) newAdminSession() (string, *AdminSession) {
	tokens := api.NewMemoryTokenStore()
	sess := &AdminSession{
		Tokens:   tokens,
		Client:   api.NewClient(a.cfg.SiteAPIURL, tokens),
		Contact:  editor.NewSingleton[models.Contact](),
		Gallery:  editor.New(func(g models.GalleryItem) string { return g.ID }),
		Results:  editor.New(func(r models.MatchResult) string { return r.ID }),
		Schedule: editor.New(func(m models.ScheduledMatch) string { return m.ID }),
	}

	// Exceeding the password attempt bound terminates the whole admin
	// session: clear the token at once, then invalidate it server-side on
	// a best-effort basis.
	forcedLogout := func() {
		logger.Warnf("session: password attempts exhausted, terminating admin session")
		sess.Tokens.ClearToken()
		go sess.Client.Logout(context.Background())
	}
	sess.ContactFlow = commit.NewFlow(a.cfg.MaxPasswordAttempts, forcedLogout)
	sess.GalleryFlow = commit.NewFlow(a.cfg.MaxPasswordAttempts, forcedLogout)
	sess.ResultsFlow = commit.NewFlow(a.cfg.MaxPasswordAttempts, forcedLogout)
	sess.ScheduleFlow = commit.NewFlow(a.cfg.MaxPasswordAttempts, forcedLogout)

	sid := uuid.NewString()
	a.mu.Lock()
	a.sessions[sid] = sess
	a.mu.Unlock()
	return sid, sess
}

func (a *App) lookup(sid string) *AdminSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions[sid]
}

func (a *App) drop(sid string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, sid)
}

// dropSession forgets the workspace and clears the browser session.
func (a *App) dropSession(c *gin.Context) {
	session := sessions.Default(c)
	if sid, ok := session.Get(middleware.SessionIDKey).(string); ok && sid != "" {
		a.drop(sid)
	}
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Errorf("session: clearing browser session: %v", err)
	}
}

// ---------------- per-request session access ----------------

// liveSession returns the admin workspace when the browser session points
// at one holding a usable token, or nil.
func (a *App) liveSession(c *gin.Context) *AdminSession {
	session := sessions.Default(c)
	sid, ok := session.Get(middleware.SessionIDKey).(string)
	if !ok || sid == "" {
		return nil
	}
	sess := a.lookup(sid)
	if sess == nil {
		return nil
	}
	token := sess.Tokens.Token()
	if token == "" || api.TokenExpired(token) {
		return nil
	}
	return sess
}

// sessionForPage resolves the workspace for an HTML page, redirecting to
// the login page when the session is gone.
func (a *App) sessionForPage(c *gin.Context) *AdminSession {
	sess := a.liveSession(c)
	if sess == nil {
		a.dropSession(c)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
	return sess
}

// sessionForAction resolves the workspace for a JSON action endpoint,
// answering with a logged_out status when the session is gone.
func (a *App) sessionForAction(c *gin.Context) *AdminSession {
	sess := a.liveSession(c)
	if sess == nil {
		a.dropSession(c)
		c.JSON(http.StatusUnauthorized, gin.H{"status": "logged_out"})
		c.Abort()
	}
	return sess
}

// ---------------- shared responses ----------------

// respondFlowResult maps a commit flow outcome onto the JSON shape the
// password modal understands.
func (a *App) respondFlowResult(c *gin.Context, res commit.Result) {
	switch res.Outcome {
	case commit.OutcomeSuccess:
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	case commit.OutcomeRetry:
		c.JSON(http.StatusOK, gin.H{
			"status":       "retry",
			"message":      res.Message,
			"attemptsLeft": res.AttemptsLeft,
		})
	case commit.OutcomeLockedOut:
		a.dropSession(c)
		c.JSON(http.StatusOK, gin.H{"status": "logged_out", "message": res.Message})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "failed", "message": res.Message})
	}
}

// beginFlow starts a gated commit and answers either with a validation
// alert or with the password prompt.
func beginFlow(c *gin.Context, flow *commit.Flow, req *commit.Request) {
	if err := flow.Begin(req); err != nil {
		status := "invalid"
		if err == commit.ErrCommitPending {
			status = "busy"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password_required"})
}

// uploadResponse is the site API's answer to POST /api/upload.
type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// saveResponse is the body shape of gated save responses; only the results
// page inspects it (a 2xx with success=false is a logical failure there).
type saveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
