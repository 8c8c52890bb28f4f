// File: controllers/gallery_controller.go
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

// ---------------- gallery page ----------------

// GalleryPage loads the gallery, resets the workspace, and renders the
// editor page.
func (a *App) GalleryPage(c *gin.Context) {
	sess := a.sessionForPage(c)
	if sess == nil {
		return
	}

	var gallery []models.GalleryItem
	if err := sess.Client.Get(c.Request.Context(), "/api/gallery", &gallery); err != nil {
		a.renderLoadError(c, "gallery.html", err)
		return
	}
	for i := range gallery {
		gallery[i].Normalize()
	}
	sess.Gallery.Load(gallery)

	c.HTML(http.StatusOK, "gallery.html", gin.H{})
}

// GalleryState returns the workspace as JSON for the page script.
func (a *App) GalleryState(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"gallery":   sess.Gallery.Items(),
		"uploading": sess.Gallery.UploadingIDs(),
	})
}

// ---------------- local edits ----------------

// GalleryAdd prepends an empty image row.
func (a *App) GalleryAdd(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	item := models.GalleryItem{ID: editor.NewID(), Type: models.SourceURL}
	sess.Gallery.Add(item)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": item.ID})
}

// GalleryUpdate replaces a single field on one image. URL edits carry a
// non-blocking urlValid hint back to the page.
func (a *App) GalleryUpdate(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var upd fieldUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": "Malformed update."})
		return
	}
	idx := sess.Gallery.IndexOf(upd.ID)
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "invalid", "message": "Unknown image."})
		return
	}

	var fieldErr error
	err := sess.Gallery.Update(idx, func(g models.GalleryItem) models.GalleryItem {
		switch upd.Field {
		case "title":
			g.Title = upd.Value
		case "url":
			g.URL = upd.Value
		case "type":
			g.Type = upd.Value
		default:
			fieldErr = errors.New("Unknown field: " + upd.Field)
		}
		return g
	})
	if err == nil {
		err = fieldErr
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": err.Error()})
		return
	}
	resp := gin.H{"status": "ok"}
	if upd.Field == "url" {
		resp["urlValid"] = models.IsValidURL(upd.Value)
	}
	c.JSON(http.StatusOK, resp)
}

// GalleryRemove splices an image out of the local workspace. Unlike the
// other pages, gallery rows are removed locally and the password gate
// applies at the next save.
func (a *App) GalleryRemove(c *gin.Context) {
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
	idx := sess.Gallery.IndexOf(req.ID)
	candidate, err := sess.Gallery.RemoveCandidate(idx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "invalid", "message": "Unknown image."})
		return
	}
	sess.Gallery.ApplyRemoval(candidate, idx)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ---------------- gated commit ----------------

// GallerySave opens the password gate for publishing the gallery. Items
// missing a title or URL are dropped from the payload; the admin confirms
// the drop first (confirmDrop) when any would be lost.
func (a *App) GallerySave(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var req struct {
		ConfirmDrop bool `json:"confirmDrop"`
	}
	// The body is optional; a bare POST means no confirmation yet.
	_ = c.ShouldBindJSON(&req)

	payload, dropped := models.PartitionGallery(sess.Gallery.Items())
	if dropped > 0 && !req.ConfirmDrop {
		c.JSON(http.StatusOK, gin.H{
			"status":  "confirm_drop",
			"dropped": dropped,
			"message": "Some images have missing Title or URL and will be removed. Continue?",
		})
		return
	}

	commitReq := &commit.Request{
		Kind:  commit.KindSave,
		Label: "gallery",
		Submit: func(ctx context.Context, password string) error {
			return sess.Client.PostGated(ctx, "/api/gallery", password, payload, nil)
		},
		Apply: func() {
			sess.Gallery.Replace(payload)
			a.hub.Broadcast("gallery")
		},
	}
	beginFlow(c, sess.GalleryFlow, commitReq)
}

// GalleryConfirm plays one password attempt for the pending commit.
func (a *App) GalleryConfirm(c *gin.Context) {
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
	a.respondFlowResult(c, sess.GalleryFlow.SubmitPassword(c.Request.Context(), req.Password))
}

// GalleryCancel abandons the pending commit.
func (a *App) GalleryCancel(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	sess.GalleryFlow.Cancel()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ---------------- uploads ----------------

// GalleryUpload relays an image file and writes the stored URL into the
// owning row. Uploads for different rows run independently.
func (a *App) GalleryUpload(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	id := c.PostForm("id")
	if sess.Gallery.IndexOf(id) < 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "invalid", "message": "Unknown image."})
		return
	}

	sess.Gallery.SetUploading(id, true)
	defer sess.Gallery.SetUploading(id, false)

	url, ok := a.relayUpload(c, sess)
	if !ok {
		return
	}
	idx := sess.Gallery.IndexOf(id)
	if idx < 0 {
		c.JSON(http.StatusOK, gin.H{"status": "failed", "message": "Image no longer exists."})
		return
	}
	_ = sess.Gallery.Update(idx, func(g models.GalleryItem) models.GalleryItem {
		g.URL = url
		return g
	})
	c.JSON(http.StatusOK, gin.H{"status": "ok", "url": url})
}
