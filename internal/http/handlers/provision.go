package handlers

import "net/http"

type generateProductResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GenerateProduct triggers one provisioning run for the product hero image.
// No request body; the prompt and target path are deployment configuration.
// Each call spends a fresh external generation and overwrites the previous
// asset, so the route sits behind the rate-limit middleware.
func (a *App) GenerateProduct(w http.ResponseWriter, r *http.Request) {
	ref, err := a.Provisioner.Provision(r.Context(), a.ProductPrompt, a.ProductImageKey)
	if err != nil {
		a.Logger.Error().Err(err).Msg("product image provisioning failed")
		a.json(w, http.StatusInternalServerError, generateProductResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}
	a.json(w, http.StatusOK, generateProductResponse{Success: true, ImageURL: ref})
}
