package provision

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"server/internal/providers/image"
	"server/internal/storage"
)

type stubGenerator struct {
	asset   image.Asset
	err     error
	calls   int
	lastReq image.GenerateRequest
}

func (s *stubGenerator) Generate(ctx context.Context, req image.GenerateRequest) (image.Asset, error) {
	s.calls++
	s.lastReq = req
	return s.asset, s.err
}

func newTestStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store
}

func TestProvisionWritesAssetAndReturnsReference(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 42}
	gen := &stubGenerator{asset: image.Asset{Data: payload, Format: "image/png"}}
	store := newTestStore(t)

	p, err := New(Options{Generator: gen, Store: store})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ref, err := p.Provision(context.Background(), "smart bottle", "product.png")
	if err != nil {
		t.Fatalf("Provision returned error: %v", err)
	}
	if ref != "/product.png" {
		t.Fatalf("ref = %q, want /product.png", ref)
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want exactly 1", gen.calls)
	}
	if gen.lastReq.Size != "1024x1024" {
		t.Fatalf("size = %q, want default 1024x1024", gen.lastReq.Size)
	}
	got, err := os.ReadFile(filepath.Join(store.BasePath(), "product.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("persisted bytes differ from generated payload")
	}
}

func TestProvisionPublicBasePrefix(t *testing.T) {
	gen := &stubGenerator{asset: image.Asset{Data: []byte{1}}}
	p, err := New(Options{Generator: gen, Store: newTestStore(t), PublicBase: "/static"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ref, err := p.Provision(context.Background(), "bottle", "product.png")
	if err != nil {
		t.Fatalf("Provision returned error: %v", err)
	}
	if ref != "/static/product.png" {
		t.Fatalf("ref = %q, want /static/product.png", ref)
	}
}

func TestProvisionGenerateFailureLeavesExistingAssetIntact(t *testing.T) {
	store := newTestStore(t)
	target := filepath.Join(store.BasePath(), "product.png")
	if err := os.WriteFile(target, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed existing asset: %v", err)
	}

	cause := errors.New("zai: service unavailable")
	p, err := New(Options{Generator: &stubGenerator{err: cause}, Store: store})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = p.Provision(context.Background(), "bottle", "product.png")
	if err == nil {
		t.Fatalf("expected error")
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Stage != StageGenerate {
		t.Fatalf("err = %v, want *Error in generate stage", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not reachable via errors.Is")
	}
	got, readErr := os.ReadFile(target)
	if readErr != nil || string(got) != "previous" {
		t.Fatalf("existing asset was disturbed: %q %v", got, readErr)
	}
}

func TestProvisionEmptyPayloadIsAnError(t *testing.T) {
	p, err := New(Options{Generator: &stubGenerator{}, Store: newTestStore(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = p.Provision(context.Background(), "bottle", "product.png")
	var perr *Error
	if !errors.As(err, &perr) || perr.Stage != StageGenerate {
		t.Fatalf("err = %v, want generate-stage *Error for empty payload", err)
	}
}

func TestProvisionRejectsBlankInputs(t *testing.T) {
	gen := &stubGenerator{asset: image.Asset{Data: []byte{1}}}
	p, err := New(Options{Generator: gen, Store: newTestStore(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.Provision(context.Background(), "  ", "product.png"); err == nil {
		t.Fatalf("blank prompt should be rejected")
	}
	if _, err := p.Provision(context.Background(), "bottle", "  "); err == nil {
		t.Fatalf("blank key should be rejected")
	}
	if gen.calls != 0 {
		t.Fatalf("no outbound request should happen for rejected input")
	}
}

func TestProvisionPersistFailure(t *testing.T) {
	gen := &stubGenerator{asset: image.Asset{Data: []byte{1}}}
	p, err := New(Options{Generator: gen, Store: newTestStore(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = p.Provision(context.Background(), "bottle", "../escape.png")
	var perr *Error
	if !errors.As(err, &perr) || perr.Stage != StagePersist {
		t.Fatalf("err = %v, want persist-stage *Error", err)
	}
}

func TestProvisionOverwritesPreviousRun(t *testing.T) {
	store := newTestStore(t)
	gen := &stubGenerator{asset: image.Asset{Data: []byte("first")}}
	p, err := New(Options{Generator: gen, Store: store})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	if _, err := p.Provision(ctx, "bottle", "product.png"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	gen.asset = image.Asset{Data: []byte("second")}
	if _, err := p.Provision(ctx, "bottle", "product.png"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(store.BasePath(), "product.png"))
	if err != nil || string(got) != "second" {
		t.Fatalf("last write should win: %q %v", got, err)
	}
	if gen.calls != 2 {
		t.Fatalf("each run must issue a fresh generation, calls = %d", gen.calls)
	}
}
