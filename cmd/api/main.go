package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"shdeco/internal/config"
	"shdeco/internal/database"
	"shdeco/internal/middleware"
	"shdeco/internal/modules/booking"
	"shdeco/internal/modules/catalog"
	"shdeco/internal/modules/payment"
	"shdeco/internal/modules/user"
	"shdeco/internal/pkg/logger"
	"shdeco/internal/provider/stripe"
	"shdeco/internal/repository"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Error("closing database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	eventRepo := repository.NewProcessedEventRepository(db)
	anomalyRepo := repository.NewAnomalyRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	userRepo := repository.NewUserRepository(db)

	stripeClient := stripe.New(cfg.StripeSecretKey, cfg.StripeAPIBase)
	verifier := payment.NewVerifier(cfg.StripeWebhookSecret, cfg.WebhookTolerance)

	paymentService := payment.NewService(
		paymentRepo,
		bookingRepo,
		bookingRepo,
		eventRepo,
		anomalyRepo,
		stripeClient,
		cfg.ClientBaseURL,
		log,
	)
	paymentHandler := payment.NewHandler(paymentService, verifier, log)

	bookingService := booking.NewService(bookingRepo)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "shDeco server is running")
	})

	root := r.Group("/")
	{
		paymentHandler.RegisterRoutes(root)
		bookingHandler.RegisterRoutes(root)
		catalogHandler.RegisterRoutes(root)
		userHandler.RegisterRoutes(root)

		admin := root.Group("/admin")
		bookingHandler.RegisterAdminRoutes(admin)
		paymentHandler.RegisterAdminRoutes(admin)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}
