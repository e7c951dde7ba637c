package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	ServiceName     string
	Environment     string
	LogLevel        string
	DataJudBaseURL  string
	DataJudAPIKey   string
	DataJudTimeout  time.Duration
	DatabaseURL     string
	BulkBatchSize   int
	BulkBatchDelay  time.Duration
	BulkMaxItems    int
	HistoryLimit    int
	WatcherEnabled  bool
	WatcherInterval time.Duration
}

// DemoMode reports whether the service runs without an upstream credential.
// Lookups fail fast in this mode instead of hitting the network.
func (c *Config) DemoMode() bool {
	return c.DataJudAPIKey == ""
}

func LoadConfig() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "datajud-service"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	baseURL := os.Getenv("DATAJUD_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api-publica.datajud.cnj.jus.br"
	}

	timeout := 30 * time.Second
	if ts := os.Getenv("DATAJUD_TIMEOUT_SECONDS"); ts != "" {
		if parsed, err := strconv.Atoi(ts); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}

	batchSize := 10 // default value
	if bs := os.Getenv("BULK_BATCH_SIZE"); bs != "" {
		if parsed, err := strconv.Atoi(bs); err == nil && parsed > 0 {
			batchSize = parsed
		}
	}

	batchDelay := 1000 * time.Millisecond
	if bd := os.Getenv("BULK_BATCH_DELAY_MS"); bd != "" {
		if parsed, err := strconv.Atoi(bd); err == nil && parsed >= 0 {
			batchDelay = time.Duration(parsed) * time.Millisecond
		}
	}

	maxItems := 1000 // default value
	if mi := os.Getenv("BULK_MAX_ITEMS"); mi != "" {
		if parsed, err := strconv.Atoi(mi); err == nil && parsed > 0 {
			maxItems = parsed
		}
	}

	historyLimit := 10 // default value
	if hl := os.Getenv("HISTORY_LIMIT"); hl != "" {
		if parsed, err := strconv.Atoi(hl); err == nil && parsed > 0 {
			historyLimit = parsed
		}
	}

	watcherInterval := 30 * time.Minute
	if wi := os.Getenv("WATCHER_INTERVAL_MIN"); wi != "" {
		if parsed, err := strconv.Atoi(wi); err == nil && parsed > 0 {
			watcherInterval = time.Duration(parsed) * time.Minute
		}
	}

	return &Config{
		Port:            port,
		ServiceName:     serviceName,
		Environment:     environment,
		LogLevel:        logLevel,
		DataJudBaseURL:  baseURL,
		DataJudAPIKey:   os.Getenv("DATAJUD_API_KEY"),
		DataJudTimeout:  timeout,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		BulkBatchSize:   batchSize,
		BulkBatchDelay:  batchDelay,
		BulkMaxItems:    maxItems,
		HistoryLimit:    historyLimit,
		WatcherEnabled:  os.Getenv("WATCHER_ENABLED") == "true",
		WatcherInterval: watcherInterval,
	}, nil
}
