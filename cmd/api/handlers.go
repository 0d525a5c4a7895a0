package main

import (
	"net/http"

	"github.com/go-chi/render"
)

func (app *Application) healthcheck(w http.ResponseWriter, r *http.Request) {
	status := "available"
	code := http.StatusOK
	if err := app.health.HealthCheck(r.Context()); err != nil {
		app.log.Warn("storage health check failed", "errMsg", err.Error())
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}
	render.Status(r, code)
	render.JSON(w, r, struct {
		Status  string `json:"status"`
		Storage string `json:"storage"`
		Debug   bool   `json:"debug"`
		Version string `json:"version"`
	}{
		Status:  status,
		Storage: app.cfg.Storage.Driver,
		Debug:   app.cfg.Debug,
		Version: version,
	})
}
