package handlers

import "net/http"

// Catalog serves the static reference tables the storefront form consumes.
func (a *App) CatalogTables(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Catalog)
}
