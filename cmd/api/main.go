package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/application/stock"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/notify"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
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

	menuRepo := postgres.NewMenuItemRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones post-commit: correo y/o Kafka según configuración.
	// Sin SMTP_HOST ni KAFKA_BROKERS la aplicación opera en silencio.
	var notifiers notify.Multi
	if cfg.SMTP.Host != "" {
		notifiers = append(notifiers, notify.NewMailer(cfg.SMTP))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPub := notify.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.App.Name)
		defer func() {
			if err := kafkaPub.Close(); err != nil {
				log.Error().Err(err).Msg("cierre del productor Kafka")
			}
		}()
		notifiers = append(notifiers, kafkaPub)
	}

	policy := orders.PricingPolicy{
		TaxRate:     cfg.Orders.TaxRate,
		DeliveryFee: cfg.Orders.DeliveryFee,
	}
	placeOrderUC := orders.NewPlaceOrderUseCase(
		txRunner, menuRepo, stockRepo, customerRepo, addressRepo, notifiers, policy, log,
	)
	cancelOrderUC := orders.NewCancelOrderUseCase(txRunner, orderRepo, customerRepo, notifiers, log)
	updateStatusUC := orders.NewUpdateOrderStatusUseCase(orderRepo, customerRepo, notifiers, log)
	orderQueryUC := orders.NewOrderQueryUseCase(orderRepo)
	stockUC := stock.NewUseCase(txRunner, menuRepo, stockRepo, movementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pedidos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PlaceOrder:   placeOrderUC,
		CancelOrder:  cancelOrderUC,
		UpdateStatus: updateStatusUC,
		OrderQuery:   orderQueryUC,
		StockUC:      stockUC,
		JWTSecret:    cfg.JWT.Secret,
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
