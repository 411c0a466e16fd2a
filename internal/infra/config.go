package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	PublicDir        string
	PublicBasePath   string
	ProductImageKey  string
	ProductPrompt    string
	ImageSize        string
	CatalogPath      string
	CurrencyLocale   string
	CurrencySymbol   string
	ZAIAPIKey        string
	ZAIBaseURL       string
	ZAIModel         string
	AllowedOrigins   []string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	ProvisionTimeout time.Duration
	RateLimitPerMin  int
}

// DefaultProductPrompt is sent to the image provider when PRODUCT_PROMPT is
// unset. It describes the hero product shot used across the storefront pages.
const DefaultProductPrompt = "Premium smart water bottle, sleek modern design, " +
	"minimalist tech product, white and silver colors, studio lighting on white background, " +
	"professional product photography, high quality, transparent background style"

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		PublicDir:        getEnv("PUBLIC_DIR", "public"),
		PublicBasePath:   getEnv("PUBLIC_BASE_PATH", "/"),
		ProductImageKey:  getEnv("PRODUCT_IMAGE_KEY", "product.png"),
		ProductPrompt:    getEnv("PRODUCT_PROMPT", DefaultProductPrompt),
		ImageSize:        getEnv("IMAGE_SIZE", "1024x1024"),
		CatalogPath:      os.Getenv("CATALOG_PATH"),
		CurrencyLocale:   getEnv("CURRENCY_LOCALE", "en-US"),
		CurrencySymbol:   getEnv("CURRENCY_SYMBOL", "$"),
		ZAIAPIKey:        os.Getenv("ZAI_API_KEY"),
		ZAIBaseURL:       getEnv("ZAI_BASE_URL", "https://api.z.ai/api/paas/v4"),
		ZAIModel:         getEnv("ZAI_MODEL", "cogview-3-flash"),
		AllowedOrigins:   splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		ProvisionTimeout: time.Second * time.Duration(getEnvInt("PROVISION_TIMEOUT_SECONDS", 90)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 5),
	}

	if strings.TrimSpace(cfg.PublicDir) == "" {
		return nil, fmt.Errorf("PUBLIC_DIR must not be blank")
	}
	if !strings.HasPrefix(cfg.PublicBasePath, "/") {
		cfg.PublicBasePath = "/" + cfg.PublicBasePath
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
