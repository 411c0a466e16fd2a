// Command provision runs one product-image provisioning pass from the
// terminal: it asks the configured provider for the hero shot and writes it
// into the public directory the API serves. This is the manual operator
// trigger; the API exposes the same operation as POST /generate-product.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

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
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	prompt := flag.String("prompt", cfg.ProductPrompt, "generation prompt")
	key := flag.String("out", cfg.ProductImageKey, "output key under the public directory")
	synthetic := flag.Bool("synthetic", false, "skip the remote provider and render a placeholder")
	flag.Parse()

	store, err := storage.NewFileStore(cfg.PublicDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize asset store")
	}

	var generator image.Generator = image.NewSynthetic()
	if !*synthetic {
		client := zai.NewClient(zai.Options{
			APIKey:      cfg.ZAIAPIKey,
			BaseURL:     cfg.ZAIBaseURL,
			Model:       cfg.ZAIModel,
			DefaultSize: cfg.ImageSize,
			Logger:      &logger,
		})
		generator = image.NewZAIGenerator(client, image.NewSynthetic())
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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ProvisionTimeout)
	defer cancel()

	ref, err := provisioner.Provision(ctx, *prompt, *key)
	if err != nil {
		logger.Error().Err(err).Msg("provisioning failed")
		os.Exit(1)
	}
	fmt.Println(ref)
}
