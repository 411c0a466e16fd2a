package image

import (
	"context"
	"errors"
	"fmt"

	"server/internal/providers/zai"
)

type zaiImageClient interface {
	GenerateImage(context.Context, zai.ImageRequest) (*zai.ImageAsset, error)
	HasCredentials() bool
	Model() string
}

// ZAIGenerator calls the ZAI image API and falls back to another generator
// (e.g. the synthetic one) when credentials are missing.
type ZAIGenerator struct {
	client   zaiImageClient
	fallback Generator
}

// NewZAIGenerator wires a ZAI client with an optional fallback generator.
func NewZAIGenerator(client zaiImageClient, fallback Generator) *ZAIGenerator {
	return &ZAIGenerator{client: client, fallback: fallback}
}

// Generate fulfils the Generator interface.
func (g *ZAIGenerator) Generate(ctx context.Context, req GenerateRequest) (Asset, error) {
	if g == nil || g.client == nil {
		if g != nil && g.fallback != nil {
			return g.fallback.Generate(ctx, req)
		}
		return Asset{}, fmt.Errorf("zai generator not configured")
	}
	if !g.client.HasCredentials() {
		if g.fallback != nil {
			return g.fallback.Generate(ctx, req)
		}
		return Asset{}, fmt.Errorf("zai generator missing credentials")
	}

	asset, err := g.client.GenerateImage(ctx, zai.ImageRequest{
		Prompt: req.Prompt,
		Size:   req.Size,
	})
	if err != nil {
		if errors.Is(err, zai.ErrMissingAPIKey) && g.fallback != nil {
			return g.fallback.Generate(ctx, req)
		}
		return Asset{}, err
	}

	width, height := ParseSize(req.Size)
	return Asset{
		Data:   asset.Data,
		Format: asset.Format,
		Width:  width,
		Height: height,
	}, nil
}

func (g *ZAIGenerator) String() string {
	if g == nil || g.client == nil {
		return "zai"
	}
	return g.client.Model()
}

var _ Generator = (*ZAIGenerator)(nil)
