package api

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/taskdeck/taskdeck/internal/api/handler"
	"github.com/taskdeck/taskdeck/internal/api/middleware"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

// RouterOptions configures the router.
type RouterOptions struct {
	Logger         *logrus.Logger
	AllowedOrigins []string
}

// NewRouter creates and configures the HTTP router.
func NewRouter(db *sql.DB, opts RouterOptions) *chi.Mux {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	depRepo := sqlite.NewDependencyRepository(db)
	tokenRepo := sqlite.NewTokenRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo)
	taskService := service.NewTaskService(taskRepo, userRepo, auditRepo)
	workflowService := service.NewWorkflowService(taskRepo, userRepo, depRepo, auditRepo)

	systemHandler := handler.NewSystemHandler()
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	workflowHandler := handler.NewWorkflowHandler(taskService, workflowService)

	r := chi.NewRouter()

	// Global middleware chain
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.RealIP)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	// Public routes
	r.Get("/v1/health", systemHandler.Health)
	r.Post("/v1/register", authHandler.Register)
	r.Post("/v1/login", authHandler.Login)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(authService))

		r.Post("/v1/logout", authHandler.Logout)

		r.Route("/v1/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Get("/{id}", taskHandler.GetTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
			r.Get("/{id}/history", taskHandler.GetTaskHistory)

			r.Post("/{id}/assign", workflowHandler.AssignTask)
			r.Post("/{id}/update-status", workflowHandler.UpdateStatus)
			r.Patch("/{id}/update-status", workflowHandler.UpdateStatus)
			r.Post("/{id}/add-dependencies", workflowHandler.AddDependencies)
		})
	})

	return r
}
