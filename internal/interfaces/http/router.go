package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/application/reports"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *usecase.CompanyUseCase
	BranchUC   *usecase.BranchUseCase
	UserUC     *usecase.UserUseCase
	ClientUC   *usecase.ClientUseCase
	StatusUC   *usecase.PipelineStatusUseCase
	PipelineUC *pipeline.UseCase
	CalendarUC *usecase.CalendarUseCase
	ReportUC   *reports.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público para alta inicial del tenant)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	management := RequireRole(entity.RoleAdmin, entity.RoleDirector)

	// Branches (protegido; altas y bajas solo admin)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", adminOnly, branchHandler.Update)
	branches.Delete("/:id", adminOnly, branchHandler.Delete)

	// Users (protegido; administración solo admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Deactivate)

	// Clients / leads (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Post("/:id/observations", clientHandler.AddObservation)
	clients.Delete("/:id", adminOnly, clientHandler.Delete)

	// Pipeline statuses / columnas del Kanban (protegido; edición solo dirección)
	statuses := protected.Group("/statuses")
	statusHandler := NewPipelineStatusHandler(deps.StatusUC)
	statuses.Post("/", management, statusHandler.Create)
	statuses.Get("/", statusHandler.List)
	statuses.Get("/:id", statusHandler.GetByID)
	statuses.Put("/:id", management, statusHandler.Update)
	statuses.Delete("/:id", management, statusHandler.Delete)

	// Deals / negocios del pipeline (protegido)
	deals := protected.Group("/deals")
	dealHandler := NewDealHandler(deps.PipelineUC)
	deals.Post("/", dealHandler.Create)
	deals.Get("/", dealHandler.List)
	deals.Get("/board", dealHandler.Board)
	deals.Get("/:id", dealHandler.GetByID)
	deals.Put("/:id", dealHandler.Update)
	deals.Post("/:id/move", dealHandler.Move)
	deals.Get("/:id/history", dealHandler.History)
	deals.Delete("/:id", management, dealHandler.Delete)

	// Calendar events (protegido)
	events := protected.Group("/events")
	calendarHandler := NewCalendarHandler(deps.CalendarUC)
	events.Post("/", calendarHandler.Create)
	events.Get("/", calendarHandler.List)
	events.Get("/:id", calendarHandler.GetByID)
	events.Put("/:id", calendarHandler.Update)
	events.Delete("/:id", calendarHandler.Delete)

	// Reports (protegido, solo dirección)
	reportsGroup := protected.Group("/reports", management)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/pipeline", reportHandler.PipelineSummary)
	reportsGroup.Get("/activity", reportHandler.TransitionActivity)
}
