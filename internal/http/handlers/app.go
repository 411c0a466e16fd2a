package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"server/internal/catalog"
	"server/internal/checkout"
	"server/internal/infra"
)

// Provisioner is the slice of the provisioning service the handlers need.
type Provisioner interface {
	Provision(ctx context.Context, prompt, key string) (string, error)
}

// App carries the wired dependencies for all HTTP handlers.
type App struct {
	Logger      infra.Logger
	Catalog     *catalog.Catalog
	Provisioner Provisioner

	// Provisioning inputs, fixed per deployment.
	ProductPrompt   string
	ProductImageKey string

	// Currency display configuration.
	CurrencyLocale string
	CurrencySymbol string
}

// NewApp builds the handler container.
func NewApp(logger infra.Logger, cat *catalog.Catalog, prov Provisioner) *App {
	return &App{
		Logger:         logger,
		Catalog:        cat,
		Provisioner:    prov,
		CurrencyLocale: "en-US",
		CurrencySymbol: "$",
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]any{"success": false, "error": msg})
}

// formatter returns a currency formatter for the request locale, falling back
// to the deployment default.
func (a *App) formatter(locale string) *checkout.Formatter {
	if locale == "" {
		locale = a.CurrencyLocale
	}
	return checkout.NewFormatter(locale, a.CurrencySymbol)
}
