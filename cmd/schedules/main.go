package main

import (
	"classbook/internal/schedules/handler"
	"classbook/internal/schedules/repository"
	"classbook/internal/schedules/service"
	"classbook/internal/schedules/validator"
	"classbook/pkg/app"
	"classbook/pkg/config"
)

const ServiceName = "schedules"

// @title Classbook Schedules API
// @version 1.0
// @description API documentation for the Schedules microservice.
// @BasePath /
func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Schedules service")
	scheduleService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewScheduleHandler(scheduleService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ScheduleService {
	dayScheduleValidator := validator.NewDayScheduleValidator(cfg.Log)
	dayScheduleRepo := repository.NewMongoDayScheduleRepository(cfg)
	scheduleService := service.NewScheduleService(
		dayScheduleRepo,
		dayScheduleValidator,
		cfg,
	)

	cfg.Log.Info("Schedules service initialized", "database", cfg.MongoDatabaseName)
	return scheduleService
}
