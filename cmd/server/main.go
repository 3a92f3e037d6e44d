package main

import (
	"log"
	"time"

	"courtdesk/config"
	"courtdesk/db"
	"courtdesk/handlers"
	"courtdesk/middleware"
	"courtdesk/models"
	"courtdesk/services"
	"courtdesk/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize file storage
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes (no authentication required)
	e.POST("/login", handlers.LoginPostHandler)

	// Protected routes
	protected := e.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/logout", handlers.LogoutHandler)
		protected.GET("/api/me", handlers.GetCurrentUserHandler)

		// Cases
		cases := protected.Group("/api/cases")
		{
			cases.POST("", handlers.CreateCaseHandler,
				middleware.RequireRole(models.CaseFilingRoles...))
			cases.GET("", handlers.GetCasesHandler)
			cases.GET("/:ident", handlers.GetCaseHandler)
			cases.PUT("/:ident", handlers.UpdateCaseHandler)
			cases.DELETE("/:ident", handlers.DeleteCaseHandler,
				middleware.RequireRole(models.CaseDeletionRoles...))

			cases.POST("/:ident/approve", handlers.ApproveCaseHandler,
				middleware.RequireRole(models.CaseApprovalRoles...))
			cases.POST("/:ident/assign-court", handlers.AssignCourtHandler,
				middleware.RequireRole(models.CourtAssignmentRoles...))
			cases.POST("/:ident/status", handlers.UpdateCaseStatusHandler,
				middleware.RequireRole(models.StatusChangeRoles...))
			cases.POST("/:ident/assign-lawyer", handlers.AssignLawyerHandler,
				middleware.RequireRole(models.LawyerAssignmentRoles...))
			cases.GET("/:ident/timeline", handlers.GetCaseTimelineHandler)
			cases.GET("/:ident/audit", handlers.GetCaseAuditHistoryHandler,
				middleware.RequireRole(models.RoleAdmin, models.RoleCourtAdmin, models.RoleRegistrar, models.RoleJudge))

			// Assignment requests
			cases.POST("/:ident/assignment-requests", handlers.RequestAssignmentHandler,
				middleware.RequireRole(models.RoleLawyer))

			// Motions
			cases.POST("/:ident/motions", handlers.FileMotionHandler)
			cases.GET("/:ident/motions", handlers.ListCaseMotionsHandler)

			// Orders
			cases.POST("/:ident/orders", handlers.DraftOrderHandler,
				middleware.RequireRole(models.RoleClerk, models.RoleRegistrar, models.RoleJudge, models.RoleAdmin))
			cases.GET("/:ident/orders", handlers.ListCaseOrdersHandler)

			// Documents
			cases.POST("/:ident/documents", handlers.UploadCaseDocumentHandler)
			cases.GET("/:ident/documents", handlers.ListCaseDocumentsHandler)
		}

		// Assignment request review
		protected.GET("/api/assignment-requests", handlers.ListAssignmentRequestsHandler)
		protected.POST("/api/assignment-requests/:id/review", handlers.ReviewAssignmentRequestHandler,
			middleware.RequireRole(models.RoleJudge, models.RoleRegistrar, models.RoleAdmin))

		// Motion review
		protected.POST("/api/motions/:id/review", handlers.ReviewMotionHandler,
			middleware.RequireRole(models.RoleJudge, models.RoleAdmin))

		// Order signing and PDF
		protected.POST("/api/orders/:id/sign", handlers.SignOrderHandler,
			middleware.RequireRole(models.RoleJudge, models.RoleAdmin))
		protected.GET("/api/orders/:id/pdf", handlers.DownloadOrderPDFHandler)

		// Documents
		protected.GET("/api/documents/:id/download", handlers.DownloadCaseDocumentHandler)
		protected.DELETE("/api/documents/:id", handlers.DeleteCaseDocumentHandler)

		// Calendar
		protected.POST("/api/calendar/hearings", handlers.ScheduleHearingHandler,
			middleware.RequireRole(models.RoleJudge, models.RoleRegistrar, models.RoleClerk, models.RoleAdmin))
		protected.GET("/api/calendar", handlers.GetCalendarHandler)
		protected.GET("/api/calendar/export", handlers.ExportCalendarHandler)

		// Notifications
		protected.GET("/api/notifications", handlers.GetNotificationsHandler)
		protected.POST("/api/notifications/:id/read", handlers.MarkNotificationReadHandler)
		protected.POST("/api/notifications/read-all", handlers.MarkAllNotificationsReadHandler)

		// Audit (admin-only listing)
		protected.GET("/api/audit", handlers.GetAuditRecordsHandler,
			middleware.RequireRole(models.RoleAdmin, models.RoleCourtAdmin))
	}

	// Outbox worker: executes timeline/notification/audit fan-out tasks
	outboxStop := make(chan struct{})
	defer close(outboxStop)
	go jobs.RunOutboxWorker(db.DB, cfg, 5*time.Second, outboxStop)

	// Hourly session cleanup
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
