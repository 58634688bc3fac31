package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	appledger "github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	domledger "github.com/jhoicas/inventario-ledger/internal/domain/ledger"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	partRepo := postgres.NewPartRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	machineRepo := postgres.NewMachineRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	priceRepo := postgres.NewPartPriceRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	thresholds := loadThresholds(cfg.Ledger, log)

	submitUC := appledger.NewSubmitUseCase(
		txRunner, partRepo, warehouseRepo, machineRepo, userRepo, priceRepo, thresholds,
	)
	approveUC := appledger.NewApproveUseCase(txRunner, txRepo)
	reconcileUC := appledger.NewReconcileUseCase(txRepo, stockRepo)

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, postgres.NewOrganizationRepository(pool))
	partUC := usecase.NewPartUseCase(partRepo, priceRepo)
	machineUC := usecase.NewMachineUseCase(machineRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SubmitUC:    submitUC,
		ApproveUC:   approveUC,
		ReconcileUC: reconcileUC,
		WarehouseUC: warehouseUC,
		PartUC:      partUC,
		MachineUC:   machineUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// loadThresholds construye los umbrales de aprobación desde la configuración.
// Un valor ilegible conserva el umbral por defecto correspondiente.
func loadThresholds(cfg config.LedgerConfig, log *logger.Logger) domledger.Thresholds {
	th := domledger.DefaultThresholds()
	if v, err := decimal.NewFromString(cfg.HighVolumeThreshold); err == nil {
		th.HighVolume = v
	} else {
		log.Warn().Str("valor", cfg.HighVolumeThreshold).Msg("umbral de volumen inválido, se usa el valor por defecto")
	}
	if v, err := decimal.NewFromString(cfg.AdjustmentThreshold); err == nil {
		th.Adjustment = v
	} else {
		log.Warn().Str("valor", cfg.AdjustmentThreshold).Msg("umbral de ajuste inválido, se usa el valor por defecto")
	}
	if v, err := decimal.NewFromString(cfg.HighValuePrice); err == nil {
		th.HighValuePrice = v
	} else {
		log.Warn().Str("valor", cfg.HighValuePrice).Msg("precio de alto valor inválido, se usa el valor por defecto")
	}
	return th
}
