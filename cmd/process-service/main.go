package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authhandler "github.com/prozessdok/prozessdok-backend/internal/auth/handler"
	"github.com/prozessdok/prozessdok-backend/internal/auth/jwt"
	authrepo "github.com/prozessdok/prozessdok-backend/internal/auth/repository"
	authservice "github.com/prozessdok/prozessdok-backend/internal/auth/service"
	mdhandler "github.com/prozessdok/prozessdok-backend/internal/masterdata/handler"
	mdrepo "github.com/prozessdok/prozessdok-backend/internal/masterdata/repository"
	"github.com/prozessdok/prozessdok-backend/internal/process/editor"
	"github.com/prozessdok/prozessdok-backend/internal/process/events"
	"github.com/prozessdok/prozessdok-backend/internal/process/handler"
	"github.com/prozessdok/prozessdok-backend/internal/process/repository"
	"github.com/prozessdok/prozessdok-backend/internal/process/service"
	"github.com/prozessdok/prozessdok-backend/internal/process/wizard"
	"github.com/prozessdok/prozessdok-backend/internal/reports"
	"github.com/prozessdok/prozessdok-backend/internal/storage"
	"github.com/prozessdok/prozessdok-backend/pkg/config"
	"github.com/prozessdok/prozessdok-backend/pkg/database"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
	"github.com/prozessdok/prozessdok-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("process-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("process-service", cfg.Server.Environment)
	log.Info().Msg("starting Process Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewProcessEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Object storage for uploaded documents
	uploader, err := storage.NewUploader(&cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create storage uploader")
	}
	if cfg.Storage.Bucket == "" {
		log.Warn().Msg("object storage not configured, file uploads are disabled")
	}

	// Initialize repositories
	processRepo := repository.NewProcessRepository(db)
	userRepo := authrepo.NewUserRepository(db)
	customerRepo := mdrepo.NewCustomerRepository(db)
	consultantRepo := mdrepo.NewConsultantRepository(db)
	projectRepo := mdrepo.NewProjectRepository(db)
	statusRepo := mdrepo.NewStatusRepository(db)
	settingsRepo := mdrepo.NewSettingsRepository(db)

	// Initialize services
	processService := service.NewProcessService(processRepo, publisher, log)
	wizardManager := wizard.NewManager(processService, cfg.Wizard.AutosaveDelay, cfg.Wizard.SessionTTL, log)
	editorManager := editor.NewManager(processService, int(cfg.Editor.MaxPayloadBytes), cfg.Editor.SessionTTL, log)
	reportService := reports.NewService(processService, reports.NewOpenAIGenerator(&cfg.LLM), publisher, log)
	batchService := storage.NewBatchService(processService, uploader, &cfg.Upload, publisher, log)

	jwtManager := jwt.NewManager(&cfg.JWT)
	authService := authservice.NewAuthService(userRepo, jwtManager, log)

	// Initialize handlers
	authHandler := authhandler.NewAuthHandler(authService, log)
	processHandler := handler.NewProcessHandler(processService, log)
	wizardHandler := handler.NewWizardHandler(wizardManager, processService, log)
	editorHandler := handler.NewEditorHandler(editorManager, log)
	reportsHandler := handler.NewReportsHandler(reportService, processService, log)
	uploadHandler := handler.NewUploadHandler(batchService, log)
	customerHandler := mdhandler.NewCustomerHandler(customerRepo, log)
	consultantHandler := mdhandler.NewConsultantHandler(consultantRepo, log)
	projectHandler := mdhandler.NewProjectHandler(projectRepo, log)
	statusHandler := mdhandler.NewStatusHandler(statusRepo, log)
	settingsHandler := mdhandler.NewSettingsHandler(settingsRepo, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "process-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// Public endpoints
	r.Post("/api/v1/auth/login", authHandler.Login)

	// Protected API endpoints
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authhandler.Authenticate(jwtManager))

		r.Get("/auth/me", authHandler.Me)
		r.Post("/auth/change-password", authHandler.ChangePassword)

		// Processes
		r.Route("/processes", func(r chi.Router) {
			r.Get("/", processHandler.List)
			r.Post("/", processHandler.Create)
			r.Get("/{id}", processHandler.Get)
			r.Put("/{id}", processHandler.Update)
			r.Delete("/{id}", processHandler.Delete)

			r.Post("/{id}/reports", reportsHandler.Generate)
			r.Get("/{id}/reports/print", reportsHandler.Print)
			r.Post("/{id}/files/{target}", uploadHandler.Upload)
		})

		// Capture wizard
		r.Route("/wizard", func(r chi.Router) {
			r.Post("/", wizardHandler.Start)
			r.Get("/{sessionID}", wizardHandler.Get)
			r.Patch("/{sessionID}", wizardHandler.Update)
			r.Post("/{sessionID}/next", wizardHandler.Next)
			r.Post("/{sessionID}/previous", wizardHandler.Previous)
			r.Post("/{sessionID}/finish", wizardHandler.Finish)
			r.Delete("/{sessionID}", wizardHandler.Close)
		})

		// Detail editor
		r.Route("/editor", func(r chi.Router) {
			r.Post("/", editorHandler.Open)
			r.Get("/{sessionID}", editorHandler.Get)
			r.Post("/{sessionID}/edit", editorHandler.Edit)
			r.Patch("/{sessionID}", editorHandler.Update)
			r.Post("/{sessionID}/save", editorHandler.Save)
			r.Post("/{sessionID}/cancel", editorHandler.Cancel)
			r.Post("/{sessionID}/delete", editorHandler.Delete)
			r.Delete("/{sessionID}", editorHandler.Close)
		})

		// Master data
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customerHandler.List)
			r.Post("/", customerHandler.Create)
			r.Get("/{id}", customerHandler.Get)
			r.Put("/{id}", customerHandler.Update)
			r.Delete("/{id}", customerHandler.Delete)
		})
		r.Route("/consultants", func(r chi.Router) {
			r.Get("/", consultantHandler.List)
			r.Post("/", consultantHandler.Create)
			r.Get("/{id}", consultantHandler.Get)
			r.Put("/{id}", consultantHandler.Update)
			r.Delete("/{id}", consultantHandler.Delete)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Create)
			r.Get("/{id}", projectHandler.Get)
			r.Put("/{id}", projectHandler.Update)
			r.Delete("/{id}", projectHandler.Delete)
		})
		r.Route("/statuses", func(r chi.Router) {
			r.Get("/", statusHandler.List)
			r.Post("/", statusHandler.Create)
			r.Get("/{id}", statusHandler.Get)
			r.Put("/{id}", statusHandler.Update)
			r.Delete("/{id}", statusHandler.Delete)
		})
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.List)
			r.Get("/{key}", settingsHandler.Get)
			r.Put("/{key}", settingsHandler.Set)
			r.Delete("/{key}", settingsHandler.Delete)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
