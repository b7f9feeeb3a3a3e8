package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment" validate:"omitempty,oneof=development production prod"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Upload      UploadConfig  `toml:"upload"`
	OCR         OCRConfig     `toml:"ocr"`
	Logging     LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

// StorageConfig holds the two working directories: inbound staging for
// uploads and outbound artifacts for converted output.
type StorageConfig struct {
	UploadDir string `toml:"upload_dir" validate:"required"`
	OutputDir string `toml:"output_dir" validate:"required"`
}

type UploadConfig struct {
	MaxSize int64 `toml:"max_size" validate:"gt=0"` // Maximum accepted upload size in bytes
}

// OCRConfig contains defaults passed to the Tesseract engine.
type OCRConfig struct {
	Languages string `toml:"languages" validate:"required"` // Default language selector, e.g. "eng+hin"
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"`
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			UploadDir: "./uploads",
			OutputDir: "./outputs",
		},
		Upload: UploadConfig{
			MaxSize: 50 * 1024 * 1024, // 50 MiB
		},
		OCR: OCRConfig{
			Languages: "eng+hin",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier
// files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SCANTEXT_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("SCANTEXT_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SCANTEXT_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if dir := os.Getenv("SCANTEXT_UPLOAD_DIR"); dir != "" {
		config.Storage.UploadDir = dir
	}
	if dir := os.Getenv("SCANTEXT_OUTPUT_DIR"); dir != "" {
		config.Storage.OutputDir = dir
	}

	// Upload configuration
	if maxSize := os.Getenv("SCANTEXT_UPLOAD_MAX_SIZE"); maxSize != "" {
		if ms, err := strconv.ParseInt(maxSize, 10, 64); err == nil && ms > 0 {
			config.Upload.MaxSize = ms
		}
	}

	// OCR configuration
	if langs := os.Getenv("SCANTEXT_OCR_LANGUAGES"); langs != "" {
		config.OCR.Languages = langs
	}

	// Logging configuration
	if level := os.Getenv("SCANTEXT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("SCANTEXT_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
// Command-line flags have highest priority.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EnsureDirs creates the staging and artifact directories if absent.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Storage.UploadDir, c.Storage.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
