package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/quake-catalog-service/internal/usgs"
)

// Config holds all feed service settings, populated from environment variables.
type Config struct {
	// Catalog query settings.
	USGSBaseURL  string
	USGSTimeout  time.Duration
	CountryCode  string // "" means no country filtering
	MinMagnitude float64
	MaxMagnitude float64
	AlertLevel   usgs.AlertLevel
	OrderBy      usgs.Order

	// Poll loop settings.
	PollInterval  time.Duration
	WindowOverlap time.Duration
	SeenCacheSize int

	KafkaBrokers    []string
	KafkaSinkTopic  string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. COUNTRY_CODE defaults to "US"; the literal value "none"
// disables country filtering (an empty env var reads as unset).
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	usgsTimeout, err := parseDurationEnv("USGS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	pollInterval, err := parseDurationEnv("POLL_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	windowOverlap, err := parseDurationEnv("WINDOW_OVERLAP", "10m")
	if err != nil {
		return nil, err
	}

	minMag, err := parseFloatEnv("MIN_MAGNITUDE", "0")
	if err != nil {
		return nil, err
	}
	maxMag, err := parseFloatEnv("MAX_MAGNITUDE", "10")
	if err != nil {
		return nil, err
	}

	alertLevel, err := usgs.ParseAlertLevel(sharedcfg.EnvOrDefault("ALERT_LEVEL", "all"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALERT_LEVEL: %w", err)
	}
	orderBy, err := usgs.ParseOrder(sharedcfg.EnvOrDefault("ORDER_BY", "time"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORDER_BY: %w", err)
	}

	countryCode := sharedcfg.EnvOrDefault("COUNTRY_CODE", "US")
	if countryCode == "none" {
		countryCode = ""
	}

	cfg := &Config{
		USGSBaseURL:  sharedcfg.EnvOrDefault("USGS_BASE_URL", usgs.DefaultBaseURL),
		USGSTimeout:  usgsTimeout,
		CountryCode:  countryCode,
		MinMagnitude: minMag,
		MaxMagnitude: maxMag,
		AlertLevel:   alertLevel,
		OrderBy:      orderBy,

		PollInterval:  pollInterval,
		WindowOverlap: windowOverlap,
		SeenCacheSize: parseSeenCacheSize(),

		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:  sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "quake-events"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.USGSBaseURL == "" {
		return nil, errors.New("USGS_BASE_URL is required")
	}
	if cfg.WindowOverlap >= cfg.PollInterval*10 {
		return nil, errors.New("WINDOW_OVERLAP is unreasonably large relative to POLL_INTERVAL")
	}

	return cfg, nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	s := sharedcfg.EnvOrDefault(name, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return d, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	s := sharedcfg.EnvOrDefault(name, fallback)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return v, nil
}

func parseSeenCacheSize() int {
	if s := os.Getenv("SEEN_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 10000
}
