package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, the two upstream
// APIs, reconciliation and customs behavior, and graceful shutdown.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's log level when set (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response.
		// Scans and bulk tagging are paced, so this is generous.
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"15m" yaml:"writeTimeout"`
		// RequestTimeout bounds the handling of a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10m" yaml:"requestTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins lists the origins accepted by the CORS middleware
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-default:"*" yaml:"allowedOrigins"`
	} `yaml:"http"`

	// JWT holds the RS256 key pair used to mint and verify API tokens
	JWT struct {
		PublicKey  string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// ShipStation configures the fulfillment platform client
	ShipStation struct {
		BaseURL   string        `env:"SHIPSTATION_BASE_URL" env-default:"https://ssapi.shipstation.com" yaml:"baseUrl"`
		APIKey    string        `env:"SHIPSTATION_API_KEY" yaml:"apiKey"`
		APISecret string        `env:"SHIPSTATION_API_SECRET" yaml:"apiSecret"`
		Timeout   time.Duration `env:"SHIPSTATION_TIMEOUT" env-default:"30s" yaml:"timeout"`
	} `yaml:"shipstation"`

	// Shopify configures the storefront client
	Shopify struct {
		// ShopDomain is the myshopify.com domain or a full base URL
		ShopDomain  string        `env:"SHOPIFY_SHOP_DOMAIN" yaml:"shopDomain"`
		AccessToken string        `env:"SHOPIFY_ACCESS_TOKEN" yaml:"accessToken"`
		APIVersion  string        `env:"SHOPIFY_API_VERSION" env-default:"2024-01" yaml:"apiVersion"`
		Timeout     time.Duration `env:"SHOPIFY_TIMEOUT" env-default:"30s" yaml:"timeout"`
	} `yaml:"shopify"`

	// Tariff points at the SKU to tariff CSV export
	Tariff struct {
		CSVPath string `env:"TARIFF_CSV_PATH" env-default:"tariffs.csv" yaml:"csvPath"`
	} `yaml:"tariff"`

	// Reconcile controls reconciliation scans and tagging
	Reconcile struct {
		// TagName is the fulfillment tag applied to orders with discrepancies
		TagName string `env:"RECONCILE_TAG_NAME" env-default:"Order Changed" yaml:"tagName"`
		// Status is the default fulfillment status filter for scans
		Status string `env:"RECONCILE_STATUS" env-default:"awaiting_shipment" yaml:"status"`
		// Lookback is the default creation-date window for scans
		Lookback          time.Duration `env:"RECONCILE_LOOKBACK" env-default:"336h" yaml:"lookback"`
		PageSize          int           `env:"RECONCILE_PAGE_SIZE" env-default:"100" yaml:"pageSize"`
		MaxPages          int           `env:"RECONCILE_MAX_PAGES" env-default:"10" yaml:"maxPages"`
		MaxOrders         int           `env:"RECONCILE_MAX_ORDERS" env-default:"500" yaml:"maxOrders"`
		CounterpartPrefix string        `env:"RECONCILE_COUNTERPART_PREFIX" env-default:"#" yaml:"counterpartPrefix"`
		// TagInterval is the delay enforced between consecutive tag writes
		TagInterval time.Duration `env:"RECONCILE_TAG_INTERVAL" env-default:"1500ms" yaml:"tagInterval"`
	} `yaml:"reconcile"`

	// Retry controls backoff on HTTP 429 responses
	Retry struct {
		Base        time.Duration `env:"RETRY_BASE" env-default:"2s" yaml:"base"`
		MaxAttempts int           `env:"RETRY_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
	} `yaml:"retry"`

	// Customs controls declaration submission
	Customs struct {
		// SubmitInterval is the delay enforced between consecutive fulfillment calls
		SubmitInterval time.Duration `env:"CUSTOMS_SUBMIT_INTERVAL" env-default:"1500ms" yaml:"submitInterval"`
	} `yaml:"customs"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

// LoadEnv fills a Config from environment variables and defaults only. It is
// used when no config file exists.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}

	return &cfg, nil
}
