// File: controllers/test_helpers_test.go
package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"sportsfest-admin/config"
	"sportsfest-admin/live"
	"sportsfest-admin/middleware"
	"sportsfest-admin/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// siteStub stands in for the site API: it hands out a token, serves the
// seeded collections, and records every gated write it receives.
type siteStub struct {
	mu sync.Mutex

	password    string
	loginStatus int // 0 means success

	results  []models.MatchResult
	teams    []models.Team
	gallery  []models.GalleryItem
	schedule []models.ScheduledMatch
	contact  models.Contact

	uploadStatus int // 0 means success
	uploadURL    string
	uploadGate   chan struct{} // when set, uploads block until it closes

	resultsSaveBody string // response body for gated POST /api/results

	gatedPosts map[string]int
	lastBody   map[string][]byte
}

func newSiteStub() *siteStub {
	return &siteStub{
		password:        "right",
		uploadURL:       "/uploads/file.png",
		resultsSaveBody: `{"success":true}`,
		gatedPosts:      make(map[string]int),
		lastBody:        make(map[string][]byte),
	}
}

func (s *siteStub) gatedCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gatedPosts[path]
}

func (s *siteStub) lastGatedBody(path string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBody[path]
}

func (s *siteStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Uploads may block on the gate, so they must not hold the lock.
		if r.Method == http.MethodPost && r.URL.Path == "/api/upload" {
			s.mu.Lock()
			gate := s.uploadGate
			status := s.uploadStatus
			uploadURL := s.uploadURL
			s.mu.Unlock()
			if gate != nil {
				<-gate
			}
			if status != 0 {
				w.WriteHeader(status)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "url": uploadURL})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		writeJSON := func(v interface{}) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(v)
		}

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/login":
			if s.loginStatus != 0 {
				w.WriteHeader(s.loginStatus)
				return
			}
			writeJSON(map[string]interface{}{"success": true, "token": "stub-token"})

		case r.Method == http.MethodPost && r.URL.Path == "/api/logout":
			writeJSON(map[string]bool{"success": true})

		case r.Method == http.MethodGet:
			switch r.URL.Path {
			case "/api/results":
				writeJSON(s.results)
			case "/api/teams":
				writeJSON(s.teams)
			case "/api/gallery":
				writeJSON(s.gallery)
			case "/api/schedule":
				writeJSON(s.schedule)
			case "/api/contact":
				writeJSON(s.contact)
			default:
				w.WriteHeader(http.StatusNotFound)
			}

		case r.Method == http.MethodPost:
			// Gated collection writes.
			body, _ := io.ReadAll(r.Body)
			s.gatedPosts[r.URL.Path]++
			s.lastBody[r.URL.Path] = body
			if r.Header.Get("x-admin-password") != s.password {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if r.URL.Path == "/api/results" {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(s.resultsSaveBody))
				return
			}
			writeJSON(map[string]bool{"success": true})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

// createDummyTemplates writes minimal templates so the HTML handlers can
// render without the real template tree.
func createDummyTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	names := []string{"login.html", "index.html", "contact.html", "gallery.html", "results.html", "schedule.html"}
	for _, name := range names {
		content := "<!doctype html><title>" + name + "</title>{{if .Error}}<p>{{.Error}}</p>{{end}}"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

// setupTestRouter wires an App against the stub upstream with the same
// routes main registers.
func setupTestRouter(t *testing.T, stub *siteStub) (*App, *gin.Engine) {
	t.Helper()

	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Environment:         "test",
		Port:                "8080",
		SiteAPIURL:          srv.URL,
		PublicSiteURL:       srv.URL,
		SessionSecret:       "test-session-secret",
		MaxPasswordAttempts: 3,
	}

	hub := live.NewHub()
	go hub.Run()
	app := NewApp(cfg, hub)

	router := gin.New()
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	router.Use(sessions.Sessions("adminsession", store))
	router.LoadHTMLGlob(filepath.Join(createDummyTemplates(t), "*.html"))

	router.GET("/login", app.ShowLoginPage)
	router.POST("/login", app.PerformLogin)
	router.GET("/logout", app.Logout)

	admin := router.Group("/admin", middleware.AuthRequired)
	{
		admin.GET("", app.Index)

		admin.GET("/contact", app.ContactPage)
		admin.GET("/contact/state", app.ContactState)
		admin.POST("/contact/update", app.ContactUpdate)
		admin.POST("/contact/coordinators/add", app.ContactCoordinatorAdd)
		admin.POST("/contact/coordinators/update", app.ContactCoordinatorUpdate)
		admin.POST("/contact/coordinators/remove", app.ContactCoordinatorRemove)
		admin.POST("/contact/save", app.ContactSave)
		admin.POST("/contact/confirm", app.ContactConfirm)
		admin.POST("/contact/cancel", app.ContactCancel)
		admin.POST("/contact/upload", app.ContactUpload)

		admin.GET("/gallery", app.GalleryPage)
		admin.GET("/gallery/state", app.GalleryState)
		admin.POST("/gallery/add", app.GalleryAdd)
		admin.POST("/gallery/update", app.GalleryUpdate)
		admin.POST("/gallery/remove", app.GalleryRemove)
		admin.POST("/gallery/save", app.GallerySave)
		admin.POST("/gallery/confirm", app.GalleryConfirm)
		admin.POST("/gallery/cancel", app.GalleryCancel)
		admin.POST("/gallery/upload", app.GalleryUpload)

		admin.GET("/results", app.ResultsPage)
		admin.GET("/results/state", app.ResultsState)
		admin.POST("/results/add", app.ResultsAdd)
		admin.POST("/results/update", app.ResultsUpdate)
		admin.POST("/results/select", app.ResultsSelect)
		admin.POST("/results/filter", app.ResultsFilter)
		admin.POST("/results/remove", app.ResultsRemove)
		admin.POST("/results/save", app.ResultsSave)
		admin.POST("/results/confirm", app.ResultsConfirm)
		admin.POST("/results/cancel", app.ResultsCancel)
		admin.POST("/results/upload", app.ResultsUpload)

		admin.GET("/schedule", app.SchedulePage)
		admin.GET("/schedule/state", app.ScheduleState)
		admin.POST("/schedule/add", app.ScheduleAdd)
		admin.POST("/schedule/duplicate", app.ScheduleDuplicate)
		admin.POST("/schedule/update", app.ScheduleUpdate)
		admin.POST("/schedule/select", app.ScheduleSelect)
		admin.POST("/schedule/filter", app.ScheduleFilter)
		admin.POST("/schedule/remove", app.ScheduleRemove)
		admin.POST("/schedule/save", app.ScheduleSave)
		admin.POST("/schedule/confirm", app.ScheduleConfirm)
		admin.POST("/schedule/cancel", app.ScheduleCancel)
	}

	return app, router
}

// login runs the real login flow and returns the session cookies.
func login(t *testing.T, router *gin.Engine) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {"admin"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))
	return rec.Result().Cookies()
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// getPage loads an HTML page, which also resets that page's workspace.
func getPage(t *testing.T, router *gin.Engine, cookies []*http.Cookie, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withCookies(httptest.NewRequest(http.MethodGet, path, nil), cookies))
	return rec
}

// postJSON posts a JSON body and decodes the JSON response.
func postJSON(t *testing.T, router *gin.Engine, cookies []*http.Cookie, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withCookies(req, cookies))
	return rec.Code, decodeJSON(t, rec)
}

func getJSON(t *testing.T, router *gin.Engine, cookies []*http.Cookie, path string) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withCookies(httptest.NewRequest(http.MethodGet, path, nil), cookies))
	return rec.Code, decodeJSON(t, rec)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// newUploadRequest builds a multipart file upload with the extra form
// fields, ready to serve (also from a goroutine when the upload must be
// held in flight).
func newUploadRequest(t *testing.T, path string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	part, err := writer.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// postUpload posts a multipart file upload with the extra form fields.
func postUpload(t *testing.T, router *gin.Engine, cookies []*http.Cookie, path string, fields map[string]string) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withCookies(newUploadRequest(t, path, fields), cookies))
	return rec.Code, decodeJSON(t, rec)
}
