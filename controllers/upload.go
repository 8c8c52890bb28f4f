// File: controllers/upload.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sportsfest-admin/api"
	"sportsfest-admin/logger"
)

// relayUpload forwards the browser's file to the site API's upload endpoint
// and returns the stored URL. On failure it writes the error response
// itself and returns ok=false; an auth failure terminates the admin
// session like any other request.
func (a *App) relayUpload(c *gin.Context, sess *AdminSession) (string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "message": "No file supplied."})
		return "", false
	}
	file, err := fileHeader.Open()
	if err != nil {
		logger.Errorf("upload: opening form file: %v", err)
		c.JSON(http.StatusOK, gin.H{"status": "failed", "message": "Error uploading file"})
		return "", false
	}
	defer func() { _ = file.Close() }()

	var resp uploadResponse
	err = sess.Client.Upload(c.Request.Context(), "/api/upload", "image", fileHeader.Filename, file, &resp)
	if err != nil {
		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			a.dropSession(c)
			c.JSON(http.StatusUnauthorized, gin.H{"status": "logged_out"})
			return "", false
		}
		logger.Errorf("upload: relay to site API failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"status": "failed", "message": "Error uploading file"})
		return "", false
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Unknown error"
		}
		c.JSON(http.StatusOK, gin.H{"status": "failed", "message": "Upload failed: " + msg})
		return "", false
	}
	return resp.URL, true
}
