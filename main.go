// main.go
package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sportsfest-admin/config"
	"sportsfest-admin/controllers"
	"sportsfest-admin/live"
	"sportsfest-admin/logger"
	"sportsfest-admin/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Infof("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitLogger(cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.RequestID)

	// Session cookies hold only the workspace id; everything else lives
	// server-side in the session registry.
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400, // 1 day
		HttpOnly: true,
		Secure:   cfg.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("adminsession", store))

	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")

	hub := live.NewHub()
	go hub.Run()

	app := controllers.NewApp(cfg, hub)

	router.GET("/health", app.Health)

	// Public routes
	router.GET("/login", app.ShowLoginPage)
	router.POST("/login", app.PerformLogin)
	router.GET("/logout", app.Logout)

	// Public site pages subscribe here for refresh-on-publish events.
	router.GET("/updates", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	// Protected routes
	admin := router.Group("/admin", middleware.AuthRequired)
	{
		admin.GET("", app.Index)
		admin.GET("/qrcode", app.GetQRCode)

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

	logger.Infof("Starting admin console on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("Failed to run server: %v", err)
	}
}
