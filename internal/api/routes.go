package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"iopps-backend-go/internal/middleware"
)

// Handlers bundles the constructed handlers for route setup.
type Handlers struct {
	Jobs         *JobHandler
	Events       *ListingHandler
	Scholarships *ListingHandler
	Conferences  *ListingHandler
	Programs     *ListingHandler
	Orgs         *OrgHandler
	Employer     *EmployerHandler
	Member       *MemberHandler
	Admin        *AdminHandler
	Billing      *BillingHandler
	Cron         *CronHandler
	Session      *SessionHandler
}

// SetupRoutes configures all application routes. Global middleware
// (logging, recovery, CORS) is applied to the engine before this is
// called.
func SetupRoutes(router *gin.Engine, authMW *middleware.AuthMiddleware, h *Handlers, logger *zap.Logger) {
	viewLimiter := middleware.NewIPRateLimiter(60, time.Minute)

	apiGroup := router.Group("/api")
	{
		// Public listing routes.
		apiGroup.GET("/jobs", h.Jobs.List)
		apiGroup.GET("/jobs/:id", h.Jobs.Get)
		apiGroup.POST("/jobs/:id/view", viewLimiter.Middleware(), h.Jobs.View)
		apiGroup.GET("/events", h.Events.List)
		apiGroup.GET("/scholarships", h.Scholarships.List)
		apiGroup.GET("/conferences", h.Conferences.List)
		apiGroup.GET("/education/programs", h.Programs.List)
		apiGroup.GET("/organizations", h.Orgs.List)
		apiGroup.GET("/schools", h.Orgs.ListSchools)

		// Session exchange. CSRF-guarded by the Origin/Host check in
		// the handler, not by bearer auth.
		apiGroup.POST("/auth/session", h.Session.Create)

		// Employer console.
		employerGroup := apiGroup.Group("/employer", authMW.RequireAuth())
		{
			employerGroup.GET("/check", h.Employer.Check)
			employerGroup.GET("/stats", h.Employer.Stats)
			employerGroup.PUT("/profile", h.Employer.UpdateProfile)
			employerGroup.POST("/jobs", h.Employer.CreateJob)
			employerGroup.GET("/jobs", h.Employer.ListJobs)
			employerGroup.POST("/events", h.Employer.CreateEvent)
			employerGroup.GET("/events", h.Employer.ListEvents)
			employerGroup.POST("/scholarships", h.Employer.CreateScholarship)
			employerGroup.GET("/scholarships", h.Employer.ListScholarships)
		}

		// Member self-service.
		memberGroup := apiGroup.Group("/member", authMW.RequireAuth())
		{
			memberGroup.GET("/profile", h.Member.Profile)
			memberGroup.PATCH("/profile", h.Member.UpdateProfile)
		}

		// Admin console. The import route also admits the cron secret
		// so the feed can push unattended.
		adminGroup := apiGroup.Group("/admin")
		{
			adminGroup.POST("/import-jobs", authMW.AdminOrCron(), h.Admin.ImportJobs)

			adminOnly := adminGroup.Group("", authMW.RequireAdmin())
			{
				adminOnly.GET("/counts", h.Admin.Counts)
				adminOnly.GET("/users", h.Admin.ListUsers)
				adminOnly.PATCH("/users/:id", h.Admin.UpdateUser)
				adminOnly.POST("/verification/:id", h.Admin.Verification)
				adminOnly.POST("/scholarships/seed", h.Admin.SeedScholarships)
				adminOnly.GET("/payments", h.Admin.ListPayments)
			}
		}

		// Billing. The webhook authenticates by Stripe signature.
		stripeGroup := apiGroup.Group("/stripe")
		{
			stripeGroup.POST("/checkout", authMW.RequireAuth(), h.Billing.CreateCheckout)
			stripeGroup.POST("/webhook", h.Billing.Webhook)
		}

		// Scheduled sweeps, gated by the shared cron secret.
		cronGroup := apiGroup.Group("/cron", authMW.RequireCronSecret())
		{
			cronGroup.GET("/expire-jobs", h.Cron.ExpireJobs)
			cronGroup.GET("/expire-events", h.Cron.ExpireEvents)
			cronGroup.GET("/expire-scholarships", h.Cron.ExpireScholarships)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured")
}
