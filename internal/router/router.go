package router

import (
	"net/http"
	"time"

	"github.com/auditrain/auditrain-backend/internal/config"
	"github.com/auditrain/auditrain-backend/internal/handler"
	"github.com/auditrain/auditrain-backend/internal/middleware"
	"github.com/auditrain/auditrain-backend/internal/response"
	"github.com/auditrain/auditrain-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Survey   *handler.SurveyHandler
	Question *handler.QuestionHandler
	Stats    *handler.StatsHandler
	User     *handler.UserHandler
	Export   *handler.ExportHandler
	Media    *handler.MediaHandler
	Live     *handler.LiveHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded logos statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Public Group ───────────────────────────────────────────────
	publicAPI := router.Group("/api/v1")
	{
		publicAPI.GET("/logos", handlers.Media.ListLogos)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 2. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.POST("/register", authLimiter.Middleware(), handlers.Auth.Register)

		// Authenticated profile routes, shared by both roles. The session
		// check only bites for student tokens.
		authed := auth.Group("")
		authed.Use(
			middleware.RequireJWT(authService),
			middleware.CheckSingleDeviceSession(authService),
		)
		{
			authed.GET("/me", handlers.Auth.Me)
			authed.POST("/logout", handlers.Auth.Logout)
			authed.PUT("/password", handlers.Auth.UpdatePassword)
			authed.PUT("/profile", handlers.Auth.UpdateProfile)
		}
	}

	// ─── 3. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/survey")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.GET("", handlers.Survey.Paper)
		studentAPI.POST("", handlers.Survey.Submit)
		studentAPI.GET("/history", handlers.Survey.History)
	}

	// ─── 4. WebSocket Group (Admin WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminWSAuth(authService))
	{
		ws.GET("/admin/submissions", handlers.Live.SubmissionStream)
	}

	// ─── 5. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Question management
		adminAPI.GET("/questions", handlers.Question.List)
		adminAPI.GET("/questions/:id", handlers.Question.Get)
		adminAPI.POST("/questions", handlers.Question.Create)
		adminAPI.PUT("/questions/:id", handlers.Question.Update)
		adminAPI.DELETE("/questions/:id", handlers.Question.Delete)

		// User management
		adminAPI.GET("/users", handlers.User.List)
		adminAPI.GET("/users/:email", handlers.User.Get)
		adminAPI.POST("/users/:email/reset-session", handlers.User.ResetSession)

		// Read side
		adminAPI.GET("/stats", handlers.Stats.Statistics)
		adminAPI.GET("/submissions", handlers.Stats.Submissions)

		// Exports
		adminAPI.GET("/exports/workbook.xlsx", handlers.Export.Workbook)
		adminAPI.GET("/exports/report.pdf", handlers.Export.StatsPDF)
		adminAPI.GET("/exports/students/:email/report.docx", handlers.Export.StudentDocx)
		adminAPI.GET("/exports/students/:email/report.pdf", handlers.Export.StudentPDF)

		// Branding logos
		adminAPI.POST("/logos/:slot", handlers.Media.UploadLogo)
	}

	return router
}
