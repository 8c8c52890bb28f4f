// File: controllers/schedule_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sportsfest-admin/commit"
	"sportsfest-admin/editor"
	"sportsfest-admin/models"
)

// ---------------- schedule page ----------------

// SchedulePage loads the published schedule and the team roster, resets
// the workspace, and renders the editor page.
func (a *App) SchedulePage(c *gin.Context) {
	sess := a.sessionForPage(c)
	if sess == nil {
		return
	}

	var schedule []models.ScheduledMatch
	if err := sess.Client.Get(c.Request.Context(), "/api/schedule", &schedule); err != nil {
		a.renderLoadError(c, "schedule.html", err)
		return
	}
	var teams []models.Team
	if err := sess.Client.Get(c.Request.Context(), "/api/teams", &teams); err != nil {
		a.renderLoadError(c, "schedule.html", err)
		return
	}

	for i := range schedule {
		schedule[i].Normalize()
	}
	sess.Schedule.Load(schedule)
	sess.Schedule.SetFilter(nil)
	sess.SetTeams(teams)

	c.HTML(http.StatusOK, "schedule.html", gin.H{
		"Sports":     models.Sports,
		"Categories": models.Categories,
		"Venues":     models.Venues,
	})
}

// ScheduleState returns the workspace as JSON for the page script.
func (a *App) ScheduleState(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"schedule":   sess.Schedule.Items(),
		"visible":    sess.Schedule.VisibleItems(),
		"teams":      models.TeamNames(sess.Teams()),
		"selectedId": sess.Schedule.SelectedID(),
	})
}

// ---------------- local edits ----------------

// ScheduleAdd prepends a new fixture. Date, time, venue, sport and
// category are inherited from the most recent entry to cut repetitive
// typing when filling in a tournament day.
func (a *App) ScheduleAdd(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	match := models.ScheduledMatch{
		ID:       editor.NewID(),
		Sport:    "Football",
		Category: models.CategoryMen,
	}
	if first, ok := sess.Schedule.First(); ok {
		match.Sport = first.Sport
		match.Category = first.Category
		match.Date = first.Date
		match.Time = first.Time
		match.Venue = first.Venue
	}
	names := models.TeamNames(sess.Teams())
	if len(names) > 0 {
		match.TeamA = names[0]
	}
	if len(names) > 1 {
		match.TeamB = names[1]
	}
	match.Normalize()
	sess.Schedule.Add(match)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": match.ID})
}

// ScheduleDuplicate copies the selected fixture under a fresh id, with the
// teams reset so the admin picks the next pairing.
func (a *App) ScheduleDuplicate(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	selected, ok := sess.Schedule.Selected()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "invalid", "message": "No match selected."})
		return
	}
	match := selected
	match.ID = editor.NewID()
	names := models.TeamNames(sess.Teams())
	match.TeamA, match.TeamB = "", ""
	if len(names) > 0 {
		match.TeamA = names[0]
	}
	if len(names) > 1 {
		match.TeamB = names[1]
	}
	sess.Schedule.Add(match)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": match.ID})
}

// ScheduleUpdate replaces a single field on one fixture.
func (a *App) ScheduleUpdate(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var upd fieldUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": "Malformed update."})
		return
	}
	idx := sess.Schedule.IndexOf(upd.ID)
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "invalid", "message": "Unknown match."})
		return
	}

	var fieldErr error
	err := sess.Schedule.Update(idx, func(m models.ScheduledMatch) models.ScheduledMatch {
		m, fieldErr = applyScheduleField(m, upd.Field, upd.Value)
		return m
	})
	if err == nil {
		err = fieldErr
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func applyScheduleField(m models.ScheduledMatch, field, value string) (models.ScheduledMatch, error) {
	switch field {
	case "sport":
		m.Sport = value
	case "category":
		m.Category = value
	case "teamA":
		m.TeamA = value
	case "teamB":
		m.TeamB = value
	case "date":
		m.Date = value
	case "time":
		m.Time = value
	case "venue":
		m.Venue = value
	default:
		return m, errors.New("Unknown field: " + field)
	}
	return m, nil
}

// ScheduleSelect changes the current fixture.
func (a *App) ScheduleSelect(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid"})
		return
	}
	sess.Schedule.Select(req.ID)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "selectedId": sess.Schedule.SelectedID()})
}

// ScheduleFilter restricts the selectable fixtures to one sport.
func (a *App) ScheduleFilter(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var req struct {
		Sport string `json:"sport"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid"})
		return
	}
	if req.Sport == "" || req.Sport == "All" {
		sess.Schedule.SetFilter(nil)
	} else {
		sport := req.Sport
		sess.Schedule.SetFilter(func(m models.ScheduledMatch) bool { return m.Sport == sport })
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "selectedId": sess.Schedule.SelectedID()})
}

// ---------------- gated commits ----------------

// ScheduleSave validates every fixture and opens the password gate.
func (a *App) ScheduleSave(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	payload := sess.Schedule.Items()
	req := &commit.Request{
		Kind:     commit.KindSave,
		Label:    "schedule",
		Validate: func() error { return models.ValidateSchedule(payload) },
		Submit: func(ctx context.Context, password string) error {
			return sess.Client.PostGated(ctx, "/api/schedule", password, payload, nil)
		},
		Apply: func() {
			sess.Schedule.Replace(payload)
			a.hub.Broadcast("schedule")
		},
	}
	beginFlow(c, sess.ScheduleFlow, req)
}

// ScheduleRemove stages a gated delete of one fixture.
func (a *App) ScheduleRemove(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid"})
		return
	}
	idx := sess.Schedule.IndexOf(req.ID)
	candidate, err := sess.Schedule.RemoveCandidate(idx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "invalid", "message": "Unknown match."})
		return
	}
	commitReq := &commit.Request{
		Kind:  commit.KindDelete,
		Label: "schedule",
		Submit: func(ctx context.Context, password string) error {
			return sess.Client.PostGated(ctx, "/api/schedule", password, candidate, nil)
		},
		Apply: func() {
			sess.Schedule.ApplyRemoval(candidate, idx)
			a.hub.Broadcast("schedule")
		},
	}
	beginFlow(c, sess.ScheduleFlow, commitReq)
}

// ScheduleConfirm plays one password attempt for the pending commit.
func (a *App) ScheduleConfirm(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid"})
		return
	}
	a.respondFlowResult(c, sess.ScheduleFlow.SubmitPassword(c.Request.Context(), req.Password))
}

// ScheduleCancel abandons the pending commit.
func (a *App) ScheduleCancel(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	sess.ScheduleFlow.Cancel()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
