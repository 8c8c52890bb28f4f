// File: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sportsfest-admin/logger"
	"sportsfest-admin/services"
)

// Health answers load-balancer checks.
func (a *App) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Index renders the dashboard with links to the four resource pages.
func (a *App) Index(c *gin.Context) {
	if a.sessionForPage(c) == nil {
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"PublicSiteURL": a.cfg.PublicSiteURL,
		"ViewerCount":   a.hub.Count(),
	})
}

// GetQRCode serves a QR code PNG for the public schedule page.
func (a *App) GetQRCode(c *gin.Context) {
	png, err := services.GenerateScheduleQRCode(a.cfg.PublicSiteURL, 300)
	if err != nil {
		logger.Errorf("GetQRCode: generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}
	c.Header("Content-Type", "image/png")
	c.Header("Content-Disposition", "inline; filename=\"schedule-qr.png\"")
	if _, err := c.Writer.Write(png); err != nil {
		logger.Errorf("GetQRCode: writing QR code bytes: %v", err)
	}
}
