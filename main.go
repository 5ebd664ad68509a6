package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/config"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/handler"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/middleware"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/repository"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/service"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/timeslot"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/pkg/database"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/pkg/logger"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}
	defer zlog.Sync()

	catalog, err := buildCatalog(cfg)
	if err != nil {
		zlog.Fatal("invalid slot configuration", zap.Error(err))
	}

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ is optional: without a broker the service runs but emits no
	// booking events.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			zlog.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer publisher.Close()
	} else {
		zlog.Warn("RABBITMQ_URL not set, booking events disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	productRepo := repository.NewProductRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Service
	bookingSvc := service.NewBookingService(service.BookingServiceDeps{
		Bookings:    bookingRepo,
		Users:       userRepo,
		Employees:   employeeRepo,
		Products:    productRepo,
		Schedules:   scheduleRepo,
		Catalog:     catalog,
		Publisher:   publisher,
		HorizonDays: cfg.BookingHorizonDays,
		Logger:      zlog,
	})

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(zlog)
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			zlog.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-backend"})
	})

	api := e.Group("/api", middleware.JWTAuth(cfg.JWTSecret))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api)
	handler.NewProductHandler(productRepo).RegisterRoutes(api)
	handler.NewStaffHandler(employeeRepo, scheduleRepo, bookingSvc).RegisterRoutes(api)

	zlog.Info("booking backend starting", zap.String("port", cfg.ServerPort))
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

func buildCatalog(cfg *config.Config) (*timeslot.Catalog, error) {
	open, err := timeslot.Parse(cfg.SlotOpen)
	if err != nil {
		return nil, err
	}
	close, err := timeslot.Parse(cfg.SlotClose)
	if err != nil {
		return nil, err
	}
	return timeslot.NewCatalog(open, close, cfg.SlotWidthMinutes)
}
