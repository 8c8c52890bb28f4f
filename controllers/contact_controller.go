// File: controllers/contact_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sportsfest-admin/commit"
	"sportsfest-admin/models"
)

// ---------------- contact page ----------------

// ContactPage loads the singleton contact record and renders the editor.
func (a *App) ContactPage(c *gin.Context) {
	sess := a.sessionForPage(c)
	if sess == nil {
		return
	}

	var contact models.Contact
	if err := sess.Client.Get(c.Request.Context(), "/api/contact", &contact); err != nil {
		a.renderLoadError(c, "contact.html", err)
		return
	}
	contact.Normalize()
	sess.Contact.Load(contact)

	c.HTML(http.StatusOK, "contact.html", gin.H{})
}

// ContactState returns the record as JSON for the page script.
func (a *App) ContactState(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"contact":   sess.Contact.Value(),
		"uploading": sess.Contact.UploadingIndices(),
	})
}

// ---------------- local edits ----------------

// ContactUpdate replaces one top-level or social field. Social link edits
// carry a non-blocking urlValid hint back to the page.
func (a *App) ContactUpdate(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var upd struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": "Malformed update."})
		return
	}

	var fieldErr error
	sess.Contact.Update(func(ct models.Contact) models.Contact {
		switch upd.Field {
		case "email":
			ct.Email = upd.Value
		case "phone":
			ct.Phone = upd.Value
		case "address":
			ct.Address = upd.Value
		case "instagram":
			ct.SocialMedia.Instagram = upd.Value
		case "youtube":
			ct.SocialMedia.YouTube = upd.Value
		default:
			fieldErr = errors.New("Unknown field: " + upd.Field)
		}
		return ct
	})
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": fieldErr.Error()})
		return
	}
	resp := gin.H{"status": "ok"}
	if upd.Field == "instagram" || upd.Field == "youtube" {
		resp["urlValid"] = models.IsValidURL(upd.Value)
	}
	c.JSON(http.StatusOK, resp)
}

// ContactCoordinatorAdd prepends a coordinator. Name and role are both
// required before the row is created.
func (a *App) ContactCoordinatorAdd(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var req struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusOK, gin.H{"status": "invalid", "message": "Coordinator name is required."})
		return
	}
	if req.Role == "" {
		c.JSON(http.StatusOK, gin.H{"status": "invalid", "message": "Role is required to add a coordinator."})
		return
	}
	sess.Contact.Update(func(ct models.Contact) models.Contact {
		coord := models.Coordinator{Name: req.Name, Role: req.Role, ImageType: models.SourceURL}
		ct.Coordinators = append([]models.Coordinator{coord}, ct.Coordinators...)
		return ct
	})
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ContactCoordinatorUpdate replaces one field on one coordinator row.
func (a *App) ContactCoordinatorUpdate(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var upd struct {
		Index int    `json:"index"`
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": "Malformed update."})
		return
	}

	var fieldErr error
	sess.Contact.Update(func(ct models.Contact) models.Contact {
		if upd.Index < 0 || upd.Index >= len(ct.Coordinators) {
			fieldErr = errors.New("Unknown coordinator.")
			return ct
		}
		coords := append([]models.Coordinator(nil), ct.Coordinators...)
		coord := coords[upd.Index]
		switch upd.Field {
		case "name":
			coord.Name = upd.Value
		case "role":
			coord.Role = upd.Value
		case "phone":
			coord.Phone = upd.Value
		case "image":
			coord.Image = upd.Value
		case "imageType":
			coord.ImageType = upd.Value
		default:
			fieldErr = errors.New("Unknown field: " + upd.Field)
			return ct
		}
		coords[upd.Index] = coord
		ct.Coordinators = coords
		return ct
	})
	if fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": fieldErr.Error()})
		return
	}
	resp := gin.H{"status": "ok"}
	if upd.Field == "image" {
		resp["urlValid"] = models.IsValidURL(upd.Value)
	}
	c.JSON(http.StatusOK, resp)
}

// ---------------- gated commits ----------------

// ContactSave validates the record and opens the password gate.
func (a *App) ContactSave(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	payload := sess.Contact.Value()
	req := &commit.Request{
		Kind:     commit.KindSave,
		Label:    "contact info",
		Validate: payload.Validate,
		Submit: func(ctx context.Context, password string) error {
			return sess.Client.PostGated(ctx, "/api/contact", password, payload, nil)
		},
		Apply: func() {
			sess.Contact.Update(func(models.Contact) models.Contact { return payload })
			a.hub.Broadcast("contact")
		},
	}
	beginFlow(c, sess.ContactFlow, req)
}

// ContactCoordinatorRemove stages a gated removal of one coordinator: the
// record minus that row is sent as the new contact state on confirm.
func (a *App) ContactCoordinatorRemove(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid"})
		return
	}
	current := sess.Contact.Value()
	if req.Index < 0 || req.Index >= len(current.Coordinators) {
		c.JSON(http.StatusNotFound, gin.H{"status": "invalid", "message": "Unknown coordinator."})
		return
	}
	candidate := current
	coords := make([]models.Coordinator, 0, len(current.Coordinators)-1)
	coords = append(coords, current.Coordinators[:req.Index]...)
	coords = append(coords, current.Coordinators[req.Index+1:]...)
	candidate.Coordinators = coords

	commitReq := &commit.Request{
		Kind:  commit.KindDelete,
		Label: "coordinator",
		Submit: func(ctx context.Context, password string) error {
			return sess.Client.PostGated(ctx, "/api/contact", password, candidate, nil)
		},
		Apply: func() {
			sess.Contact.Update(func(models.Contact) models.Contact { return candidate })
			a.hub.Broadcast("contact")
		},
	}
	beginFlow(c, sess.ContactFlow, commitReq)
}

// ContactConfirm plays one password attempt for the pending commit.
func (a *App) ContactConfirm(c *gin.Context) {
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
	a.respondFlowResult(c, sess.ContactFlow.SubmitPassword(c.Request.Context(), req.Password))
}

// ContactCancel abandons the pending commit.
func (a *App) ContactCancel(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	sess.ContactFlow.Cancel()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ---------------- uploads ----------------

// ContactUpload relays a coordinator photo and writes the stored URL into
// that coordinator's image field.
func (a *App) ContactUpload(c *gin.Context) {
	sess := a.sessionForAction(c)
	if sess == nil {
		return
	}
	index, err := strconv.Atoi(c.PostForm("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "message": "Malformed upload."})
		return
	}
	current := sess.Contact.Value()
	if index < 0 || index >= len(current.Coordinators) {
		c.JSON(http.StatusNotFound, gin.H{"status": "invalid", "message": "Unknown coordinator."})
		return
	}

	sess.Contact.SetUploading(index, true)
	defer sess.Contact.SetUploading(index, false)

	url, ok := a.relayUpload(c, sess)
	if !ok {
		return
	}
	var fieldErr error
	sess.Contact.Update(func(ct models.Contact) models.Contact {
		if index >= len(ct.Coordinators) {
			fieldErr = errors.New("Coordinator no longer exists.")
			return ct
		}
		coords := append([]models.Coordinator(nil), ct.Coordinators...)
		coords[index].Image = url
		ct.Coordinators = coords
		return ct
	})
	if fieldErr != nil {
		c.JSON(http.StatusOK, gin.H{"status": "failed", "message": fieldErr.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "url": url})
}
