package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"iopps-backend-go/internal/api"
	"iopps-backend-go/internal/cache"
	"iopps-backend-go/internal/config"
	"iopps-backend-go/internal/core"
	"iopps-backend-go/internal/db"
	"iopps-backend-go/internal/mailer"
	"iopps-backend-go/internal/middleware"
)

func main() {
	// .env is a development convenience; in production all config
	// arrives through real environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err == nil {
			log.Println("Loaded environment from .env file")
		}
	}

	var zapLogger *zap.Logger
	var err error
	if os.Getenv("GIN_MODE") == "release" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()
	clients, err := db.NewClients(initCtx, appConfig)
	if err != nil {
		zapLogger.Fatal("failed to initialize Firebase clients", zap.Error(err))
	}
	defer clients.Close()
	zapLogger.Info("Firebase Admin SDK initialized", zap.String("projectId", appConfig.FirebaseProjectID))

	// Repositories.
	jobRepo := db.NewFirestoreJobRepository(clients.Firestore)
	eventRepo := db.NewFirestoreListingRepository(clients.Firestore, db.EventsCollection)
	scholarshipRepo := db.NewFirestoreListingRepository(clients.Firestore, db.ScholarshipsCollection)
	conferenceRepo := db.NewFirestoreListingRepository(clients.Firestore, db.ConferencesCollection)
	programRepo := db.NewFirestoreListingRepository(clients.Firestore, db.ProgramsCollection)
	orgRepo := db.NewFirestoreOrgRepository(clients.Firestore)
	paymentRepo := db.NewFirestorePaymentRepository(clients.Firestore)
	statsRepo := db.NewFirestoreStatsRepository(clients.Firestore)

	// Optional integrations.
	var redisCache cache.Cache
	if appConfig.RedisAddr != "" {
		redisCache, err = cache.NewRedisCache(cache.NewRedisCacheConfig{Address: appConfig.RedisAddr}, zapLogger)
		if err != nil {
			zapLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
			redisCache = nil
		}
	}
	var orgMailer core.Mailer
	if appConfig.MailConfigured() {
		orgMailer = mailer.New(appConfig.SMTPHost, appConfig.SMTPPort, appConfig.SMTPUser, appConfig.SMTPPass, appConfig.SMTPFrom)
		zapLogger.Info("SMTP mailer configured", zap.String("host", appConfig.SMTPHost))
	}

	// Services.
	jobService := core.NewJobService(jobRepo, zapLogger)
	eventService := core.NewEventService(eventRepo, zapLogger)
	scholarshipService := core.NewScholarshipService(scholarshipRepo, zapLogger)
	conferenceService := core.NewConferenceService(conferenceRepo, zapLogger)
	programService := core.NewProgramService(programRepo, zapLogger)
	orgService := core.NewOrgService(orgRepo, jobRepo, orgMailer, zapLogger)
	memberService := core.NewMemberService(orgRepo)
	adminService := core.NewAdminService(orgRepo, statsRepo, paymentRepo)
	billingService := core.NewBillingService(appConfig.StripeSecretKey, paymentRepo, jobRepo, orgRepo, zapLogger)

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.Recovery(zapLogger))
	router.Use(middleware.CORS(appConfig.ClientURL))

	authMW := middleware.NewAuthMiddleware(clients.Auth, appConfig.CronSecret, zapLogger)
	secureCookies := strings.ToLower(appConfig.GinMode) == "release"

	handlers := &api.Handlers{
		Jobs:         api.NewJobHandler(jobService, redisCache, zapLogger),
		Events:       api.NewListingHandler(eventService, zapLogger),
		Scholarships: api.NewListingHandler(scholarshipService, zapLogger),
		Conferences:  api.NewListingHandler(conferenceService, zapLogger),
		Programs:     api.NewListingHandler(programService, zapLogger),
		Orgs:         api.NewOrgHandler(orgService, zapLogger),
		Employer:     api.NewEmployerHandler(orgService, jobService, eventService, scholarshipService, redisCache, zapLogger),
		Member:       api.NewMemberHandler(memberService, zapLogger),
		Admin:        api.NewAdminHandler(adminService, orgService, jobService, scholarshipService, zapLogger),
		Billing:      api.NewBillingHandler(billingService, orgService, appConfig.StripeWebhookSecret, appConfig.ClientURL, zapLogger),
		Cron:         api.NewCronHandler(jobService, eventService, scholarshipService, zapLogger),
		Session:      api.NewSessionHandler(clients.Auth, secureCookies, zapLogger),
	}
	api.SetupRoutes(router, authMW, handlers, zapLogger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Port),
		Handler: router,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", httpServer.Addr), zap.String("ginMode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("forced shutdown", zap.Error(err))
	}
	zapLogger.Info("server exited gracefully")
}
