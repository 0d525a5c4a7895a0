package main

import (
	"context"
	"log/slog"

	"cinerate/proj/internal/config"
	"cinerate/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	Services  *services.Services
	validator *govalidator.Validate
	decoder   *schema.Decoder
	health    HealthChecker
}

func NewApplication(
	cfg *config.Config,
	log *slog.Logger,
	services *services.Services,
	validator *govalidator.Validate,
	health HealthChecker,
) *Application {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:       cfg,
		log:       log,
		Services:  services,
		validator: validator,
		decoder:   decoder,
		health:    health,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
