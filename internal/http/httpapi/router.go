package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// Options configures router construction.
type Options struct {
	App             *handlers.App
	Logger          infra.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
	StaticDir       string
	StaticBasePath  string
	DefaultLocale   string
}

// NewRouter assembles the chi router with the service's middleware stack and
// routes.
func NewRouter(opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Locale(opts.DefaultLocale))

	app := opts.App

	r.Get("/v1/healthz", app.Health)
	r.Get("/catalog", app.CatalogTables)

	r.Route("/checkout", func(r chi.Router) {
		r.Post("/quote", app.CheckoutQuote)
		r.Post("/submit", app.CheckoutSubmit)
	})

	limit := opts.RateLimitPerMin
	if limit <= 0 {
		limit = 5
	}
	r.With(middleware.RateLimit(limit, time.Minute)).
		Post("/generate-product", app.GenerateProduct)

	// The provisioned asset is served from the same process so the public
	// reference resolves without a CDN in front.
	if opts.StaticDir != "" {
		fs := stdhttp.FileServer(stdhttp.Dir(opts.StaticDir))
		base := opts.StaticBasePath
		if base == "" || base == "/" {
			r.Handle("/*", fs)
		} else {
			r.Handle(base+"/*", stdhttp.StripPrefix(base, fs))
		}
	}

	return r
}
