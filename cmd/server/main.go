package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/JavierAQR/backend-luaspets/internal/config"
	"github.com/JavierAQR/backend-luaspets/internal/es"
	"github.com/JavierAQR/backend-luaspets/internal/events"
	"github.com/JavierAQR/backend-luaspets/internal/handlers"
	"github.com/JavierAQR/backend-luaspets/internal/logging"
	"github.com/JavierAQR/backend-luaspets/internal/middleware/auth"
	"github.com/JavierAQR/backend-luaspets/internal/service"
	httpserver "github.com/JavierAQR/backend-luaspets/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(context.Background(), configuration)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	prod := events.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	jwtAuth := &auth.JWT{Secret: []byte(configuration.JWT_SECRET)}

	cartSvc := &service.CartService{DB: db}
	orderSvc := &service.OrderService{DB: db}
	productSvc := &service.ProductService{DB: db}
	petSvc := &service.PetService{DB: db}
	catalogSvc := &service.ClinicServiceCatalog{DB: db}
	appointmentSvc := &service.AppointmentService{DB: db}
	userSvc := &service.UserService{DB: db}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		DB:                 db,
		Auth:               jwtAuth,
		ProductHandler:     &handlers.ProductHandler{Svc: productSvc, Producer: prod, ES: esClient},
		SearchHandler:      &handlers.SearchHandler{ES: esClient, Index: es.ProductIndex},
		CartHandler:        &handlers.CartHandler{Svc: cartSvc, Producer: prod},
		OrderHandler:       &handlers.OrderHandler{Svc: orderSvc, Producer: prod},
		PetHandler:         &handlers.PetHandler{Svc: petSvc},
		ServiceHandler:     &handlers.ClinicServiceHandler{Svc: catalogSvc},
		AppointmentHandler: &handlers.AppointmentHandler{Svc: appointmentSvc, Producer: prod},
		UserHandler:        &handlers.UserHandler{Svc: userSvc},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
