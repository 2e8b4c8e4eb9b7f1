package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                string
	HTTPAddr           string
	MongoURI           string
	MongoDB            string
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	StorageMode        string
	IdempotencyTTL     time.Duration
	OutboxPollInterval time.Duration
	OverdueSweepSpec   string
	PrepBufferHours    int

	// Pricing knobs: the engine defaults are business configuration, not
	// constants, so operations can retune the rate card without a deploy.
	Currency                string
	TaxRate                 float64
	IncludedDistancePerDay  int64
	LateFeePerHour          int64
	ExtraDistanceFeePerUnit int64
	FuelFeePerPercent       int64
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "fleetrent"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		StorageMode:      strings.ToLower(getEnv("STORAGE_MODE", "memory")),
		OverdueSweepSpec: getEnv("OVERDUE_SWEEP_CRON", "*/5 * * * *"),
		Currency:         getEnv("PRICING_CURRENCY", "INR"),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	idempotencyTTL, err := parseDurationEnv("IDEMP_TTL", 168*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.IdempotencyTTL = idempotencyTTL

	poll, err := parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxPollInterval = poll

	// Zero keeps back-to-back windows bookable out of the box; fleets
	// that clean or inspect between rentals opt in to a buffer.
	prepHours, err := parseIntEnv("PREP_BUFFER_HOURS", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.PrepBufferHours = int(prepHours)

	taxRate, err := parseFloatEnv("TAX_RATE", 0.18)
	if err != nil {
		return Config{}, err
	}
	cfg.TaxRate = taxRate

	cfg.IncludedDistancePerDay, err = parseIntEnv("DISTANCE_ALLOWANCE_PER_DAY", 300)
	if err != nil {
		return Config{}, err
	}
	cfg.LateFeePerHour, err = parseIntEnv("LATE_FEE_PER_HOUR", 50)
	if err != nil {
		return Config{}, err
	}
	cfg.ExtraDistanceFeePerUnit, err = parseIntEnv("EXTRA_DISTANCE_FEE_PER_UNIT", 10)
	if err != nil {
		return Config{}, err
	}
	cfg.FuelFeePerPercent, err = parseIntEnv("FUEL_FEE_PER_PERCENT", 2)
	if err != nil {
		return Config{}, err
	}

	if cfg.StorageMode == "mongo" && cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_MODE=mongo")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return v, nil
}

func parseFloatEnv(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s number: %w", key, err)
	}
	return v, nil
}
