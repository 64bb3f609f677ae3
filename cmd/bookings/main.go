package main

import (
	bookinghandler "classbook/internal/bookings/handler"
	bookingrepository "classbook/internal/bookings/repository"
	bookingservice "classbook/internal/bookings/service"
	bookingvalidator "classbook/internal/bookings/validator"
	schedulerepository "classbook/internal/schedules/repository"
	"classbook/pkg/app"
	"classbook/pkg/config"
	"classbook/pkg/kafka"
	kafkaconfig "classbook/pkg/kafka/config"
	kafkamiddleware "classbook/pkg/kafka/middleware"
)

const (
	ServiceName = "bookings"

	BookingEventsTopic    = "booking-events"
	BookingEventsDLQTopic = "booking-events-dlq"
)

// @title Classbook Bookings API
// @version 1.0
// @description API documentation for the Bookings microservice.
// @BasePath /
func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(bookinghandler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) bookingservice.BookingService {
	bookingValidator := bookingvalidator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepository.NewBookingLockRepository(cfg)
	dayScheduleRepo := schedulerepository.NewMongoDayScheduleRepository(cfg)

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		dayScheduleRepo,
		bookingValidator,
		initPublisher(cfg),
		cfg,
	)

	cfg.Log.Info("Bookings service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

// initPublisher wires the booking events producer. A broker outage must not
// keep bookings from being taken, so failures only disable publishing.
func initPublisher(cfg *config.Config) bookingservice.Publisher {
	kafkaCfg := kafkaconfig.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Warn("Kafka configuration invalid, booking events disabled", "error", err)
		return nil
	}

	producer, err := kafka.NewProducer(kafkaCfg, BookingEventsTopic, BookingEventsDLQTopic)
	if err != nil {
		cfg.Log.Warn("Failed to create Kafka producer, booking events disabled", "error", err)
		return nil
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafkamiddleware.MetricsProducerMiddleware())
	}

	cfg.Log.Info("Booking events producer initialized",
		"topic", BookingEventsTopic,
		"dlq_topic", BookingEventsDLQTopic,
	)
	return producer
}
