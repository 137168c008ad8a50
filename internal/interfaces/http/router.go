package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/logistica-api/internal/application/analytics"
	"github.com/jhoicas/logistica-api/internal/application/audit"
	"github.com/jhoicas/logistica-api/internal/application/auth"
	"github.com/jhoicas/logistica-api/internal/application/inventory"
	"github.com/jhoicas/logistica-api/internal/application/movement"
	"github.com/jhoicas/logistica-api/internal/application/usecase"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	BaseUC      *usecase.BaseUseCase
	PersonnelUC *usecase.PersonnelUseCase
	AssetUC     *inventory.AssetUseCase
	PurchaseUC  *inventory.PurchaseUseCase
	HistoryUC   *inventory.HistoryUseCase
	Movement    *movement.Service
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	AuditUC     *audit.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	baseHandler := NewBaseHandler(deps.BaseUC)
	personnelHandler := NewPersonnelHandler(deps.PersonnelUC)
	assetHandler := NewAssetHandler(deps.AssetUC, deps.PurchaseUC)
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	movementHandler := NewMovementHandler(deps.Movement)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC, deps.AuditUC)

	// Auth (público)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/roles", authHandler.Roles)

	users := protected.Group("/auth/users", RequireCapability(authz.CanManageUsers))
	users.Get("/", authHandler.ListUsers)
	users.Post("/", authHandler.CreateUser)
	users.Put("/:id", authHandler.UpdateUser)
	users.Delete("/:id", authHandler.DeleteUser)

	bases := protected.Group("/bases")
	bases.Get("/", baseHandler.List)
	bases.Post("/", baseHandler.Create)
	bases.Put("/:id", baseHandler.Update)
	bases.Delete("/:id", baseHandler.Delete)

	assets := protected.Group("/assets")
	assets.Get("/", assetHandler.List)
	assets.Post("/", assetHandler.Create)
	assets.Get("/:id", assetHandler.Get)
	assets.Put("/:id", assetHandler.Update)
	assets.Delete("/:id", assetHandler.Delete)
	assets.Patch("/:id/condition", assetHandler.SetCondition)

	personnel := protected.Group("/personnel")
	personnel.Get("/", personnelHandler.List)
	personnel.Post("/", personnelHandler.Create)
	personnel.Put("/:id", personnelHandler.Update)

	purchases := protected.Group("/purchases")
	purchases.Get("/", assetHandler.ListPurchases)
	purchases.Post("/", assetHandler.CreatePurchase)

	transfers := protected.Group("/transfers")
	transfers.Get("/", movementHandler.ListTransfers)
	transfers.Post("/", movementHandler.CreateTransfer)
	transfers.Post("/:id/approve", movementHandler.ApproveTransfer)
	transfers.Post("/:id/reject", movementHandler.RejectTransfer)

	assignments := protected.Group("/assignments")
	assignments.Get("/", movementHandler.ListAssignments)
	assignments.Post("/", movementHandler.IssueAsset)
	assignments.Post("/:id/return", movementHandler.ReturnAsset)

	requests := protected.Group("/requests")
	requests.Get("/", movementHandler.ListRequests)
	requests.Post("/", movementHandler.CreateRequest)
	requests.Post("/:id/approve", movementHandler.ApproveRequest)
	requests.Post("/:id/reject", movementHandler.RejectRequest)

	maintenance := protected.Group("/maintenance")
	maintenance.Get("/", historyHandler.ListMaintenance)
	maintenance.Post("/", historyHandler.CreateMaintenance)

	damage := protected.Group("/damage")
	damage.Get("/", historyHandler.ListDamage)
	damage.Post("/", historyHandler.ReportDamage)

	protected.Get("/dashboard", dashboardHandler.Get)
	protected.Get("/reports/inventory.pdf", RequireCapability(authz.CanViewReports), dashboardHandler.InventoryReport)
	protected.Get("/audit", RequireCapability(authz.CanViewAuditLogs), dashboardHandler.Audit)
}
