package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SubmitUC    *ledger.SubmitUseCase
	ApproveUC   *ledger.ApproveUseCase
	ReconcileUC *ledger.ReconcileUseCase
	WarehouseUC *usecase.WarehouseUseCase
	PartUC      *usecase.PartUseCase
	MachineUC   *usecase.MachineUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ledger (protegido)
	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.SubmitUC, deps.ApproveUC, deps.ReconcileUC)
	ledgerGroup.Post("/transactions", ledgerHandler.Submit)
	ledgerGroup.Post("/transactions/batch", ledgerHandler.SubmitBatch)
	ledgerGroup.Get("/transactions/pending", RequireRole("admin", "supervisor"), ledgerHandler.ListPending)
	ledgerGroup.Post("/transactions/:id/approve", RequireRole("admin", "supervisor"), ledgerHandler.Approve)
	ledgerGroup.Get("/reconciliation", ledgerHandler.Reconcile)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Parts (protegido)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Post("/:id/prices", partHandler.RegisterPrice)
	parts.Get("/:id/prices", partHandler.ListPrices)

	// Machines (protegido)
	machines := protected.Group("/machines")
	machineHandler := NewMachineHandler(deps.MachineUC)
	machines.Post("/", machineHandler.Create)
	machines.Get("/", machineHandler.List)
	machines.Get("/:id", machineHandler.GetByID)
}
