// Package provision implements the one-shot operation that asks an image
// provider for the product hero shot and persists it at the well-known path
// the storefront pages reference.
package provision

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"server/internal/infra"
	"server/internal/providers/image"
	"server/internal/storage"
)

// Stages a provisioning run can fail in.
const (
	StageGenerate = "generate"
	StagePersist  = "persist"
)

// Error wraps any failure of a provisioning run with the stage it occurred in.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provision: %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Provisioner obtains a generated product image and writes it to the asset
// store. Runs are serialized: the operation is operator-triggered and two
// overlapping writes to the same path would race.
type Provisioner struct {
	gen        image.Generator
	store      *storage.FileStore
	publicBase string
	size       string
	logger     *infra.Logger

	mu sync.Mutex
}

// Options configures a Provisioner.
type Options struct {
	Generator  image.Generator
	Store      *storage.FileStore
	PublicBase string
	Size       string
	Logger     *infra.Logger
}

// New wires a Provisioner.
func New(opts Options) (*Provisioner, error) {
	if opts.Generator == nil {
		return nil, errors.New("provision: generator is required")
	}
	if opts.Store == nil {
		return nil, errors.New("provision: store is required")
	}
	base := strings.TrimSpace(opts.PublicBase)
	if base == "" {
		base = "/"
	}
	size := strings.TrimSpace(opts.Size)
	if size == "" {
		size = "1024x1024"
	}
	return &Provisioner{
		gen:        opts.Generator,
		store:      opts.Store,
		publicBase: base,
		size:       size,
		logger:     opts.Logger,
	}, nil
}

// Provision requests one generated image for prompt, persists it at key, and
// returns the public reference for the stored asset. Exactly one outbound
// generation request is made per call; the file is only touched once a
// complete payload is in hand. Failures are returned as *Error with the
// cause attached. No retries.
func (p *Provisioner) Provision(ctx context.Context, prompt, key string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &Error{Stage: StageGenerate, Err: errors.New("prompt is required")}
	}
	if strings.TrimSpace(key) == "" {
		return "", &Error{Stage: StagePersist, Err: errors.New("target key is required")}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	asset, err := p.gen.Generate(ctx, image.GenerateRequest{Prompt: prompt, Size: p.size})
	if err != nil {
		return "", &Error{Stage: StageGenerate, Err: err}
	}
	if len(asset.Data) == 0 {
		return "", &Error{Stage: StageGenerate, Err: errors.New("provider returned no image data")}
	}

	cleanKey, err := p.store.Write(ctx, key, asset.Data)
	if err != nil {
		return "", &Error{Stage: StagePersist, Err: err}
	}

	ref := p.publicRef(cleanKey)
	if p.logger != nil {
		p.logger.Info().
			Str("key", cleanKey).
			Str("format", asset.Format).
			Int("bytes", len(asset.Data)).
			Msg("product image provisioned")
	}
	return ref, nil
}

func (p *Provisioner) publicRef(key string) string {
	return path.Join("/", strings.Trim(p.publicBase, "/"), key)
}
