// File: controllers/results_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sportsfest-admin/api"
	"sportsfest-admin/commit"
	"sportsfest-admin/editor"
	"sportsfest-admin/logger"
	"sportsfest-admin/models"
)

// ---------------- results page ----------------

// ResultsPage loads the published results and the team roster, resets the
// workspace, and renders the editor page.
func (a *App) ResultsPage(c *gin.Context) {
	sess := a.sessionForPage(c)
	if sess == nil {
		return
	}

	var results []models.MatchResult
	if err := sess.Client.Get(c.Request.Context(), "/api/results", &results); err != nil {
		a.renderLoadError(c, "results.html", err)
		return
	}
	var teams []models.Team
	if err := sess.Client.Get(c.Request.Context(), "/api/teams", &teams); err != nil {
		a.renderLoadError(c, "results.html", err)
		return
	}

	for i := range results {
		results[i].Normalize()
	}
	sess.Results.Load(results)
	sess.Results.SetFilter(nil)
	sess.SetTeams(teams)

	c.HTML(http.StatusOK, "results.html", gin.H{
		"Sports":     models.Sports,
		"Categories": models.Categories,
	})
}

// renderLoadError distinguishes a dead session from an upstream failure
// when the initial fetch of a page fails.
func (a *App) renderLoadError(c *gin.Context, template string, err error) {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		a.dropSession(c)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	logger.Errorf("page load failed: %v", err)
	c.HTML(http.StatusBadGateway, template, gin.H{
		"Error": "Could not load data from the site API.",
	})
}

// ResultsState returns the workspace as JSON for the page script.
func (a *App) ResultsState(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results":    sess.Results.Items(),
		"visible":    sess.Results.VisibleItems(),
		"teams":      models.TeamNames(sess.Teams()),
		"selectedId": sess.Results.SelectedID(),
		"uploading":  sess.Results.UploadingIDs(),
	})
}

// ---------------- local edits ----------------

// ResultsAdd prepends a new result seeded from the roster and selects it.
func (a *App) ResultsAdd(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	names := models.TeamNames(sess.Teams())
	result := models.MatchResult{
		ID:           editor.NewID(),
		Sport:        "Football",
		Category:     models.CategoryMen,
		ScoreA:       0,
		ScoreB:       0,
		StreamStatus: models.StreamEnded,
	}
	if len(names) > 0 {
		result.TeamA = names[0]
	}
	if len(names) > 1 {
		result.TeamB = names[1]
	}
	result.Normalize()
	sess.Results.Add(result)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": result.ID})
}

type fieldUpdate struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// ResultsUpdate replaces a single field on one result. Link fields carry a
// non-blocking urlValid hint back so the page can flag garbage without
// rejecting the edit.
func (a *App) ResultsUpdate(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var upd fieldUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": "Malformed update."})
		return
	}
	idx := sess.Results.IndexOf(upd.ID)
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "invalid", "message": "Unknown result."})
		return
	}

	var fieldErr error
	err := sess.Results.Update(idx, func(r models.MatchResult) models.MatchResult {
		r, fieldErr = applyResultField(r, upd.Field, upd.Value)
		return r
	})
	if err == nil {
		err = fieldErr
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": err.Error()})
		return
	}
	resp := gin.H{"status": "ok"}
	if upd.Field == "liveLink" || upd.Field == "scoreSheetLink" {
		resp["urlValid"] = models.IsValidURL(upd.Value)
	}
	c.JSON(http.StatusOK, resp)
}

func applyResultField(r models.MatchResult, field, value string) (models.MatchResult, error) {
	switch field {
	case "sport":
		r.Sport = value
	case "category":
		r.Category = value
	case "teamA":
		r.TeamA = value
	case "teamB":
		r.TeamB = value
	case "winner":
		r.Winner = value
	case "date":
		r.Date = value
	case "liveLink":
		r.LiveLink = value
	case "streamStatus":
		r.StreamStatus = value
	case "scoreSheetType":
		r.ScoreSheetType = value
	case "scoreSheetLink":
		r.ScoreSheetLink = value
	case "scoreA", "scoreB":
		score, err := strconv.Atoi(value)
		if err != nil {
			return r, errors.New("Scores must be whole numbers.")
		}
		if field == "scoreA" {
			r.ScoreA = score
		} else {
			r.ScoreB = score
		}
	default:
		return r, errors.New("Unknown field: " + field)
	}
	return r, nil
}

// ResultsSelect changes the current result.
func (a *App) ResultsSelect(c *gin.Context) {
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
	sess.Results.Select(req.ID)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "selectedId": sess.Results.SelectedID()})
}

// ResultsFilter restricts the selectable results to one sport ("All"
// clears the filter) and moves the selection into the filtered view.
func (a *App) ResultsFilter(c *gin.Context) {
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
		sess.Results.SetFilter(nil)
	} else {
		sport := req.Sport
		sess.Results.SetFilter(func(r models.MatchResult) bool { return r.Sport == sport })
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "selectedId": sess.Results.SelectedID()})
}

// ---------------- gated commits ----------------

// ResultsSave validates the whole collection and opens the password gate.
// The publish response carries a success flag: a 2xx with success=false is
// a logical failure, not a wrong password.
func (a *App) ResultsSave(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	payload := sess.Results.Items()
	req := &commit.Request{
		Kind:     commit.KindSave,
		Label:    "results",
		Validate: func() error { return models.ValidateResults(payload) },
		Submit: func(ctx context.Context, password string) error {
			var resp saveResponse
			if err := sess.Client.PostGated(ctx, "/api/results", password, payload, &resp); err != nil {
				return err
			}
			if !resp.Success {
				msg := resp.Message
				if msg == "" {
					msg = "Failed to save results."
				}
				return &api.RequestError{Status: http.StatusOK, Message: msg}
			}
			return nil
		},
		Apply: func() {
			sess.Results.Replace(payload)
			a.hub.Broadcast("results")
		},
	}
	beginFlow(c, sess.ResultsFlow, req)
}

// ResultsRemove stages a gated delete: the candidate collection without the
// record is built now, sent on confirm, and only installed on success.
func (a *App) ResultsRemove(c *gin.Context) {
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
	idx := sess.Results.IndexOf(req.ID)
	candidate, err := sess.Results.RemoveCandidate(idx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "invalid", "message": "Unknown result."})
		return
	}
	commitReq := &commit.Request{
		Kind:  commit.KindDelete,
		Label: "results",
		Submit: func(ctx context.Context, password string) error {
			return sess.Client.PostGated(ctx, "/api/results", password, candidate, nil)
		},
		Apply: func() {
			sess.Results.ApplyRemoval(candidate, idx)
			a.hub.Broadcast("results")
		},
	}
	beginFlow(c, sess.ResultsFlow, commitReq)
}

// ResultsConfirm plays one password attempt for the pending commit.
func (a *App) ResultsConfirm(c *gin.Context) {
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
	a.respondFlowResult(c, sess.ResultsFlow.SubmitPassword(c.Request.Context(), req.Password))
}

// ResultsCancel abandons the pending commit.
func (a *App) ResultsCancel(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	sess.ResultsFlow.Cancel()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ---------------- uploads ----------------

// ResultsUpload relays a score sheet file and writes the stored URL back
// into the owning record only; concurrent uploads for other records are
// unaffected.
func (a *App) ResultsUpload(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	id := c.PostForm("id")
	if sess.Results.IndexOf(id) < 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "invalid", "message": "Unknown result."})
		return
	}

	sess.Results.SetUploading(id, true)
	defer sess.Results.SetUploading(id, false)

	url, ok := a.relayUpload(c, sess)
	if !ok {
		return
	}
	// Re-resolve by id: the collection may have shifted while the upload
	// was in flight, and the URL must land on the same record.
	idx := sess.Results.IndexOf(id)
	if idx < 0 {
		c.JSON(http.StatusOK, gin.H{"status": "failed", "message": "Result no longer exists."})
		return
	}
	_ = sess.Results.Update(idx, func(r models.MatchResult) models.MatchResult {
		r.ScoreSheetLink = url
		return r
	})
	c.JSON(http.StatusOK, gin.H{"status": "ok", "url": url})
}
