package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/catalog"
	"server/internal/http/handlers"
	"server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/providers/image"
	"server/internal/providers/zai"
	"server/internal/provision"
	"server/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}

	store, err := storage.NewFileStore(cfg.PublicDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize asset store")
	}

	client := zai.NewClient(zai.Options{
		APIKey:      cfg.ZAIAPIKey,
		BaseURL:     cfg.ZAIBaseURL,
		Model:       cfg.ZAIModel,
		DefaultSize: cfg.ImageSize,
		Logger:      &logger,
	})
	generator := image.NewZAIGenerator(client, image.NewSynthetic())
	if !client.HasCredentials() {
		logger.Warn().Msg("ZAI_API_KEY not set; provisioning will use the synthetic generator")
	}

	provisioner, err := provision.New(provision.Options{
		Generator:  generator,
		Store:      store,
		PublicBase: cfg.PublicBasePath,
		Size:       cfg.ImageSize,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to wire provisioner")
	}

	app := handlers.NewApp(logger, cat, provisioner)
	app.ProductPrompt = cfg.ProductPrompt
	app.ProductImageKey = cfg.ProductImageKey
	app.CurrencyLocale = cfg.CurrencyLocale
	app.CurrencySymbol = cfg.CurrencySymbol

	router := httpapi.NewRouter(httpapi.Options{
		App:             app,
		Logger:          logger,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		StaticDir:       cfg.PublicDir,
		StaticBasePath:  cfg.PublicBasePath,
		DefaultLocale:   cfg.CurrencyLocale,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
