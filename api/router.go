// api/router.go
package api

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wordcross/wordcross-backend/api/handlers"
	"github.com/wordcross/wordcross-backend/api/middleware"
	"github.com/wordcross/wordcross-backend/config"
	"github.com/wordcross/wordcross-backend/internal/storage"
	"github.com/wordcross/wordcross-backend/web"
)

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(store storage.Store, cfg *config.Config) *gin.Engine {
	router := gin.Default() // Includes Logger and Recovery

	router.SetHTMLTemplate(template.Must(
		template.New("").ParseFS(web.TemplateFS, "templates/*.html"),
	))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Request ids first so every later log line can carry one. The error
	// handler runs before the session middleware so it wraps the handlers.
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SessionMiddleware(cfg))

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(store, cfg)
	siteHandler := handlers.NewSiteHandler(store, cfg)
	pageHandler := handlers.NewPageHandler(store, cfg)
	componentHandler := handlers.NewComponentHandler(store, cfg)
	dashboardHandler := handlers.NewDashboardHandler(store)
	userHandler := handlers.NewUserHandler(store)
	viewHandler := handlers.NewViewHandler(store)

	// --- Public Routes ---
	router.GET("/health", func(c *gin.Context) {
		if !store.Ping(c.Request.Context()) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Login attempts are rate limited per client IP; the rest of the surface
	// is not.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	authRoutes := router.Group("/auth")
	{
		authRoutes.GET("/login", viewHandler.LoginPage)
		authRoutes.POST("/login", middleware.RateLimitMiddleware(loginLimiter), authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/logout", authHandler.LogoutRedirect)
	}

	// --- Protected JSON API ---
	apiRoutes := router.Group("/api")
	apiRoutes.Use(middleware.RequireAuth())
	{
		apiRoutes.GET("/dashboard/stats", dashboardHandler.Stats)
		apiRoutes.GET("/users", userHandler.ListUsers)

		apiRoutes.GET("/sites", siteHandler.ListSites)
		apiRoutes.POST("/sites", siteHandler.CreateSite)
		apiRoutes.POST("/sites/bulk-delete", siteHandler.BulkDeleteSites)
		apiRoutes.GET("/sites/:id", siteHandler.GetSite)
		apiRoutes.PUT("/sites/:id", siteHandler.UpdateSite)
		apiRoutes.DELETE("/sites/:id", siteHandler.DeleteSite)

		apiRoutes.GET("/sites/:id/pages", pageHandler.ListSitePages)
		apiRoutes.POST("/sites/:id/pages", pageHandler.CreatePage)

		apiRoutes.GET("/pages", pageHandler.ListPages)
		apiRoutes.GET("/pages/:id", pageHandler.GetPage)
		apiRoutes.PUT("/pages/:id", pageHandler.UpdatePage)
		apiRoutes.DELETE("/pages/:id", pageHandler.DeletePage)

		apiRoutes.GET("/pages/:id/components", componentHandler.ListComponents)
		apiRoutes.POST("/pages/:id/components", componentHandler.CreateComponent)
		apiRoutes.PUT("/components/:id", componentHandler.UpdateComponent)
		apiRoutes.PUT("/components/:id/order", componentHandler.UpdateComponentOrder)
		apiRoutes.DELETE("/components/:id", componentHandler.DeleteComponent)
	}

	// --- Server-rendered admin UI ---
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.RequireAuthPage("/auth/login"))
	{
		adminRoutes.GET("/dashboard", viewHandler.Dashboard)
		adminRoutes.GET("/sites", viewHandler.SitesPage)
		adminRoutes.GET("/sites/new", viewHandler.NewSitePage)
		adminRoutes.GET("/sites/:id", viewHandler.SiteDetailPage)
	}

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	return router
}
