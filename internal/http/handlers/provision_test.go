package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/catalog"
)

type stubProvisioner struct {
	ref        string
	err        error
	calls      int
	lastPrompt string
	lastKey    string
}

func (s *stubProvisioner) Provision(ctx context.Context, prompt, key string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastKey = key
	if s.err != nil {
		return "", s.err
	}
	return s.ref, nil
}

func TestGenerateProductSuccess(t *testing.T) {
	prov := &stubProvisioner{ref: "/product.png"}
	app := NewApp(zerolog.Nop(), catalog.Default(), prov)
	app.ProductPrompt = "smart water bottle"
	app.ProductImageKey = "product.png"

	rec := httptest.NewRecorder()
	app.GenerateProduct(rec, httptest.NewRequest(http.MethodPost, "/generate-product", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp generateProductResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.ImageURL != "/product.png" {
		t.Fatalf("unexpected response: %#v", resp)
	}
	if prov.calls != 1 || prov.lastPrompt != "smart water bottle" || prov.lastKey != "product.png" {
		t.Fatalf("provisioner called with %q/%q (%d calls)", prov.lastPrompt, prov.lastKey, prov.calls)
	}
}

func TestGenerateProductFailure(t *testing.T) {
	prov := &stubProvisioner{err: errors.New("provision: generate: zai: service unavailable")}
	app := NewApp(zerolog.Nop(), catalog.Default(), prov)

	rec := httptest.NewRecorder()
	app.GenerateProduct(rec, httptest.NewRequest(http.MethodPost, "/generate-product", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp generateProductResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("failure must carry success=false and a message: %#v", resp)
	}
}
