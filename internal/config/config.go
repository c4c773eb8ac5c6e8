package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/statlake/pitchload/internal/domain/minutes"
	"github.com/statlake/pitchload/internal/domain/risk"
	"github.com/statlake/pitchload/internal/domain/rolling"
	"github.com/statlake/pitchload/internal/platform/logging"
)

// Config stores runtime configuration for the pipeline.
type Config struct {
	AppEnv         string `validate:"required"`
	ServiceName    string `validate:"required"`
	ServiceVersion string `validate:"required"`

	DataRoot      string `validate:"required"`
	LakehouseRoot string `validate:"required"`
	StorePath     string `validate:"required"`
	MigrationsDir string `validate:"required"`

	Workers        int `validate:"gt=0"`
	EventBatchSize int `validate:"gt=0"`

	PartitionScheme rolling.Scheme
	ACWRVariant     risk.Variant
	MinutesSource   minutes.Source

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	workers, err := getEnvAsInt("PIPELINE_WORKERS", runtime.NumCPU())
	if err != nil {
		return Config{}, fmt.Errorf("parse PIPELINE_WORKERS: %w", err)
	}

	eventBatchSize, err := getEnvAsInt("PIPELINE_EVENT_BATCH_SIZE", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse PIPELINE_EVENT_BATCH_SIZE: %w", err)
	}

	scheme := rolling.Scheme(strings.ToLower(getEnv("PIPELINE_PARTITION_SCHEME", string(rolling.SchemePlayerSeason))))
	if !scheme.Valid() {
		return Config{}, fmt.Errorf("invalid PIPELINE_PARTITION_SCHEME %q: valid values are %s, %s",
			scheme, rolling.SchemePlayer, rolling.SchemePlayerSeason)
	}

	variant := risk.Variant(strings.ToLower(getEnv("PIPELINE_ACWR_VARIANT", string(risk.VariantCoupled))))
	if !variant.Valid() {
		return Config{}, fmt.Errorf("invalid PIPELINE_ACWR_VARIANT %q: valid values are %s, %s",
			variant, risk.VariantCoupled, risk.VariantUncoupled)
	}

	source := minutes.Source(strings.ToLower(getEnv("PIPELINE_MINUTES_SOURCE", string(minutes.SourceReconstructed))))
	if !source.Valid() {
		return Config{}, fmt.Errorf("invalid PIPELINE_MINUTES_SOURCE %q: valid values are %s, %s",
			source, minutes.SourceReconstructed, minutes.SourceApprox)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "pitchload-pipeline"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		DataRoot:               getEnv("PIPELINE_DATA_ROOT", "./data"),
		LakehouseRoot:          getEnv("PIPELINE_LAKEHOUSE_ROOT", "./lakehouse"),
		StorePath:              getEnv("PIPELINE_STORE_PATH", "./lakehouse/warehouse.db"),
		MigrationsDir:          getEnv("MIGRATIONS_DIR", "./db/migrations"),
		Workers:                workers,
		EventBatchSize:         eventBatchSize,
		PartitionScheme:        scheme,
		ACWRVariant:            variant,
		MinutesSource:          source,
		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
		LogLevel:               parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
