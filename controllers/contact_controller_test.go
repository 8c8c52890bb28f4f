// File: controllers/contact_controller_test.go
package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsfest-admin/models"
)

func seedContact() models.Contact {
	return models.Contact{
		Email:   "info@fest.example",
		Phone:   "12345",
		Address: "1 Festival Way",
		SocialMedia: models.SocialMedia{
			Instagram: "https://instagram.com/fest",
		},
		Coordinators: []models.Coordinator{
			{Name: "Amrita", Role: "Lead", ImageType: models.SourceURL},
		},
	}
}

func loadContactPage(t *testing.T, stub *siteStub) (*gin.Engine, []*http.Cookie) {
	t.Helper()
	_, router := setupTestRouter(t, stub)
	cookies := login(t, router)
	rec := getPage(t, router, cookies, "/admin/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	return router, cookies
}

// Saving without an email reports the alert and never opens the prompt.
func TestContactSave_RequiresEmailAndPhone(t *testing.T) {
	stub := newSiteStub()
	contact := seedContact()
	contact.Email = ""
	stub.contact = contact
	router, cookies := loadContactPage(t, stub)

	_, body := postJSON(t, router, cookies, "/admin/contact/save", nil)
	assert.Equal(t, "invalid", body["status"])
	assert.Equal(t, "Email and Phone are required.", body["message"])
	assert.Zero(t, stub.gatedCount("/api/contact"))
}

func TestContactSave_PublishesEditedRecord(t *testing.T) {
	stub := newSiteStub()
	stub.contact = seedContact()
	router, cookies := loadContactPage(t, stub)

	_, body := postJSON(t, router, cookies, "/admin/contact/update",
		map[string]string{"field": "email", "value": "new@fest.example"})
	require.Equal(t, "ok", body["status"])

	_, body = postJSON(t, router, cookies, "/admin/contact/save", nil)
	require.Equal(t, "password_required", body["status"])
	_, body = postJSON(t, router, cookies, "/admin/contact/confirm", map[string]string{"password": "right"})
	require.Equal(t, "success", body["status"])

	var published models.Contact
	require.NoError(t, json.Unmarshal(stub.lastGatedBody("/api/contact"), &published))
	assert.Equal(t, "new@fest.example", published.Email)
	assert.Equal(t, "12345", published.Phone)
}

func TestContactCoordinatorAdd_RequiresNameAndRole(t *testing.T) {
	stub := newSiteStub()
	stub.contact = seedContact()
	router, cookies := loadContactPage(t, stub)

	_, body := postJSON(t, router, cookies, "/admin/contact/coordinators/add",
		map[string]string{"name": "", "role": "Media"})
	assert.Equal(t, "invalid", body["status"])
	assert.Equal(t, "Coordinator name is required.", body["message"])

	_, body = postJSON(t, router, cookies, "/admin/contact/coordinators/add",
		map[string]string{"name": "Noor", "role": ""})
	assert.Equal(t, "invalid", body["status"])
	assert.Equal(t, "Role is required to add a coordinator.", body["message"])

	_, body = postJSON(t, router, cookies, "/admin/contact/coordinators/add",
		map[string]string{"name": "Noor", "role": "Media"})
	require.Equal(t, "ok", body["status"])

	_, state := getJSON(t, router, cookies, "/admin/contact/state")
	contact := state["contact"].(map[string]interface{})
	coords := contact["coordinators"].([]interface{})
	require.Len(t, coords, 2)
	first := coords[0].(map[string]interface{})
	assert.Equal(t, "Noor", first["name"], "new coordinators are prepended")
}

// Removing a coordinator is a gated commit of the record without that row.
func TestContactCoordinatorRemove_IsGated(t *testing.T) {
	stub := newSiteStub()
	contact := seedContact()
	contact.Coordinators = append(contact.Coordinators,
		models.Coordinator{Name: "Noor", Role: "Media", ImageType: models.SourceURL})
	stub.contact = contact
	router, cookies := loadContactPage(t, stub)

	_, body := postJSON(t, router, cookies, "/admin/contact/coordinators/remove",
		map[string]int{"index": 0})
	require.Equal(t, "password_required", body["status"])

	// Still present while the prompt is open.
	_, state := getJSON(t, router, cookies, "/admin/contact/state")
	coords := state["contact"].(map[string]interface{})["coordinators"].([]interface{})
	assert.Len(t, coords, 2)

	_, body = postJSON(t, router, cookies, "/admin/contact/confirm", map[string]string{"password": "right"})
	require.Equal(t, "success", body["status"])

	var published models.Contact
	require.NoError(t, json.Unmarshal(stub.lastGatedBody("/api/contact"), &published))
	require.Len(t, published.Coordinators, 1)
	assert.Equal(t, "Noor", published.Coordinators[0].Name)

	_, state = getJSON(t, router, cookies, "/admin/contact/state")
	coords = state["contact"].(map[string]interface{})["coordinators"].([]interface{})
	assert.Len(t, coords, 1)
}

// Social and image link edits carry the validity hint.
func TestContactUpdate_LinkFieldsCarryValidityHint(t *testing.T) {
	stub := newSiteStub()
	stub.contact = seedContact()
	router, cookies := loadContactPage(t, stub)

	_, body := postJSON(t, router, cookies, "/admin/contact/update",
		map[string]string{"field": "instagram", "value": "not a url"})
	require.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["urlValid"])

	_, body = postJSON(t, router, cookies, "/admin/contact/update",
		map[string]string{"field": "youtube", "value": "https://youtube.com/@fest"})
	assert.Equal(t, true, body["urlValid"])

	_, body = postJSON(t, router, cookies, "/admin/contact/update",
		map[string]string{"field": "address", "value": "1 Festival Way"})
	_, present := body["urlValid"]
	assert.False(t, present)

	_, body = postJSON(t, router, cookies, "/admin/contact/coordinators/update",
		map[string]interface{}{"index": 0, "field": "image", "value": "nope"})
	require.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["urlValid"])
}

func TestContactUpload_WritesCoordinatorImage(t *testing.T) {
	stub := newSiteStub()
	contact := seedContact()
	contact.Coordinators = append(contact.Coordinators,
		models.Coordinator{Name: "Noor", Role: "Media", ImageType: models.SourceURL})
	stub.contact = contact
	stub.uploadURL = "/uploads/coordinator-1.png"
	router, cookies := loadContactPage(t, stub)

	code, body := postUpload(t, router, cookies, "/admin/contact/upload", map[string]string{"index": "1"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["status"])

	_, state := getJSON(t, router, cookies, "/admin/contact/state")
	coords := state["contact"].(map[string]interface{})["coordinators"].([]interface{})
	first := coords[0].(map[string]interface{})
	second := coords[1].(map[string]interface{})
	assert.Empty(t, first["image"], "other coordinators must be untouched")
	assert.Equal(t, "/uploads/coordinator-1.png", second["image"])
}
