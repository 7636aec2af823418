package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
}

// AssetsConfig points at the directory holding /assets. Exports read
// assets/logo.png, assets/option-template.png and assets/slides/<name>.jpg for
// welcome, whyus, topclients, steps, requirements and contactus. Missing files are
// logged at startup and rendered as fallbacks.
type AssetsConfig struct {
	StaticDir string
	FontDir   string
}

// RenderConfig holds page rendering and PDF output settings
type RenderConfig struct {
	PDFEngine         string // "gofpdf" or "chrome"
	ChromePath        string
	PageImageFormat   string // "jpeg" or "png"
	JPEGQuality       int
	ImageFetchTimeout time.Duration
	FooterText        string
	FooterQRURL       string
}

// CatalogConfig holds the product data source settings
type CatalogConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	SheetRange      string
	DatabaseURL     string
	RedisURL        string
	CacheTTL        time.Duration
	// DriveImages downloads Drive-hosted images through the API when credentials are set
	DriveImages bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Config holds all configuration
type Config struct {
	Server  ServerConfig
	Assets  AssetsConfig
	Render  RenderConfig
	Catalog CatalogConfig
	Log     LogConfig
}

// Load reads .env (outside production) and then the environment
func Load() (*Config, error) {
	if os.Getenv("ENV") != "production" {
		// Overload so .env values win over stale shell variables in development
		if err := godotenv.Overload(".env"); err != nil {
			fmt.Printf("Warning: .env file not found, using environment variables\n")
		}
	}

	port := strings.TrimPrefix(getEnv("PORT", "8080"), ":")

	config := &Config{
		Server: ServerConfig{
			Port:            port,
			Env:             getEnv("ENV", "development"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Assets: AssetsConfig{
			StaticDir: getEnv("STATIC_DIR", "static"),
			FontDir:   getEnv("FONT_DIR", ""),
		},
		Render: RenderConfig{
			PDFEngine:         strings.ToLower(getEnv("PDF_ENGINE", "gofpdf")),
			ChromePath:        getEnv("CHROME_PATH", ""),
			PageImageFormat:   strings.ToLower(getEnv("PAGE_IMAGE_FORMAT", "jpeg")),
			JPEGQuality:       getEnvAsInt("PAGE_JPEG_QUALITY", 90),
			ImageFetchTimeout: getEnvAsDuration("IMAGE_FETCH_TIMEOUT", 15*time.Second),
			FooterText:        getEnv("FOOTER_TEXT", "HappyWrap • www.happywrap.in"),
			FooterQRURL:       getEnv("FOOTER_QR_URL", ""),
		},
		Catalog: CatalogConfig{
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			SpreadsheetID:   getEnv("GOOGLE_SHEETS_ID", ""),
			SheetRange:      getEnv("GOOGLE_SHEETS_RANGE", "Products!A1:Z"),
			DatabaseURL:     getEnv("DATABASE_URL", ""),
			RedisURL:        getEnv("REDIS_URL", ""),
			CacheTTL:        getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
			DriveImages:     getEnvAsBool("DRIVE_API_IMAGES", true),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the render pipeline cannot honour
func (c *Config) Validate() error {
	switch c.Render.PDFEngine {
	case "gofpdf", "chrome":
	default:
		return fmt.Errorf("invalid PDF_ENGINE %q: expected gofpdf or chrome", c.Render.PDFEngine)
	}
	switch c.Render.PageImageFormat {
	case "jpeg", "png":
	default:
		return fmt.Errorf("invalid PAGE_IMAGE_FORMAT %q: expected jpeg or png", c.Render.PageImageFormat)
	}
	if c.Render.JPEGQuality < 1 || c.Render.JPEGQuality > 100 {
		return fmt.Errorf("invalid PAGE_JPEG_QUALITY %d: expected 1-100", c.Render.JPEGQuality)
	}
	return nil
}

// IsProduction reports whether ENV=production
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LogFields returns the configuration as zap fields, without secrets
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Server.Env),
		zap.String("port", c.Server.Port),
		zap.String("static_dir", c.Assets.StaticDir),
		zap.String("pdf_engine", c.Render.PDFEngine),
		zap.String("page_image_format", c.Render.PageImageFormat),
		zap.Bool("sheets_configured", c.Catalog.SpreadsheetID != ""),
		zap.Bool("database_configured", c.Catalog.DatabaseURL != ""),
		zap.Bool("redis_configured", c.Catalog.RedisURL != ""),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as booleans
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
