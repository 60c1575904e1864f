package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	apmfiber "go.elastic.co/apm/module/apmfiber/v2"

	"jeewifi-backend/config"
	"jeewifi-backend/core"
	"jeewifi-backend/db"
	"jeewifi-backend/http/controllers"
	"jeewifi-backend/http/middleware"
	"jeewifi-backend/http/routes"
	"jeewifi-backend/logger"
	"jeewifi-backend/providers/events"
	"jeewifi-backend/providers/otp"
	"jeewifi-backend/providers/sms"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.InitLogger(); err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer func() {
		if f, ok := logger.Logger.Out.(*os.File); ok {
			f.Close()
		}
	}()

	os.Setenv("ELASTIC_APM_SERVER_URL", cfg.ElasticAPMServerURL)
	os.Setenv("ELASTIC_APM_SERVICE_NAME", cfg.ElasticAPMServiceName)
	os.Setenv("ELASTIC_APM_ENVIRONMENT", cfg.ElasticAPMEnvironment)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(cors.New())

	app.Use(apmfiber.Middleware())

	app.Use(fiberLogger.New(fiberLogger.Config{
		Format:     "${ip} - - [${time}] \"${method} ${path} ${protocol}\" ${status} ${latency}\n",
		TimeFormat: "02/Jan/2024:15:04:05 -0700",
	}))

	if err := db.ConnectDatabase(cfg); err != nil {
		logger.Logger.WithError(err).Fatal("Database connection failed")
	}

	var publisher core.Publisher = core.NopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, err := events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			logger.Logger.WithError(err).Fatal("NATS connection failed")
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	store := core.NewGormStore(db.DB)
	policy := core.NewPolicy(store)
	ledger := core.NewLedger(store, publisher, logger.Logger)
	sessions := core.NewSessions(store, publisher, logger.Logger)
	otpProvider := otp.NewSimpleOTPProvider(6, cfg.OTPExpireMinutes)
	auth := core.NewAuth(store, policy, ledger, sessions,
		otpProvider, sms.FromConfig(cfg), cfg.OTPMaxAttempts, logger.Logger)

	controllers.Setup(store, policy, ledger, sessions, auth)

	routes.AuthRoutes(app)
	routes.PortalRoutes(app)
	routes.VoucherRoutes(app)
	routes.AccessListRoutes(app)
	routes.PackageRoutes(app)
	routes.HotspotUserRoutes(app)
	routes.LocationRoutes(app)
	routes.SessionRoutes(app)
	routes.PaymentRoutes(app)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := core.NewQuotaClock(store, sessions, ledger,
		time.Duration(cfg.QuotaTickSeconds)*time.Second,
		time.Duration(cfg.VoucherSweepSeconds)*time.Second,
		logger.Logger)
	go clock.Run(ctx)

	port := ":4000"
	logger.Logger.Infof("Server is running on port %s", port)
	go func() {
		if err := app.Listen(port); err != nil {
			logger.Logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	waitForShutdown()
	cancel()
}

func waitForShutdown() {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan
	logger.Logger.Info("Shutting down server...")
}
