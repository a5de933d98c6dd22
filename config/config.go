package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/galleria"
	"github.com/sagarc03/galleria/database"
	galleriahttp "github.com/sagarc03/galleria/http"
	"github.com/sagarc03/galleria/keybackend"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "GALLERIA"

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for galleria.
type Config struct {
	Env      string                  `mapstructure:"env" validate:"omitempty,oneof=dev development prod production"`
	Server   ServerConfig            `mapstructure:"server"`
	Service  ServiceConfig           `mapstructure:"service"`
	Database DatabaseConfig          `mapstructure:"database"`
	Storage  StorageConfig           `mapstructure:"storage"`
	Auth     AuthConfig              `mapstructure:"auth"`
	CORS     galleriahttp.CORSConfig `mapstructure:"cors"`
	Log      LogConfig               `mapstructure:"log"`
}

// IsProduction reports whether env selects production behavior.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
	// PublicBaseURL prefixes image URIs served by the filesystem backend.
	PublicBaseURL string `mapstructure:"public_base_url" validate:"required,url"`
	MaxUploadSize int64  `mapstructure:"max_upload_size" validate:"min=1"`
}

// ServiceConfig holds service-level configuration. Timeouts are in seconds.
type ServiceConfig struct {
	RequestTimeout int `mapstructure:"request_timeout" validate:"min=0"`
	CleanupTimeout int `mapstructure:"cleanup_timeout" validate:"min=1"`
}

func (c ServiceConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c ServiceConfig) CleanupTimeoutDuration() time.Duration {
	return time.Duration(c.CleanupTimeout) * time.Second
}

// DatabaseConfig adds startup behavior to the connection settings.
type DatabaseConfig struct {
	database.Config `mapstructure:",squash"`
	AutoMigrate     bool `mapstructure:"auto_migrate"`
}

// StorageConfig selects and configures the image storage backend.
type StorageConfig struct {
	Type string   `mapstructure:"type" validate:"required,oneof=filesystem s3"`
	Path string   `mapstructure:"path"`
	S3   S3Config `mapstructure:"s3"`
}

// S3Config holds settings for the s3 backend.
type S3Config struct {
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint" validate:"omitempty,url"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PathStyle     bool   `mapstructure:"path_style"`
	PublicRead    bool   `mapstructure:"public_read"`
	PublicBaseURL string `mapstructure:"public_base_url" validate:"omitempty,url"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Secret keybackend.SecretConfig `mapstructure:"secret"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"db-type":      "database.type",
	"db-dsn":       "database.dsn",
	"storage-type": "storage.type",
	"storage-path": "storage.path",
	"port":         "server.port",
	"base-url":     "server.public_base_url",
	"secret-file":  "auth.secret.file",
	"auto-migrate": "database.auto_migrate",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("server.port", 5708)
	v.SetDefault("server.public_base_url", "http://localhost:5708")
	v.SetDefault("server.max_upload_size", galleria.DefaultMaxUploadSize)

	v.SetDefault("service.request_timeout", 60)  // seconds
	v.SetDefault("service.cleanup_timeout", 30) // seconds

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "galleria.db")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.tables.users", "users")
	v.SetDefault("database.tables.galleries", "galleries")
	v.SetDefault("database.tables.pictures", "pictures")

	v.SetDefault("storage.type", string(galleria.StorageFilesystem))
	v.SetDefault("storage.path", "./data")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")
	v.SetDefault("storage.s3.path_style", false)
	v.SetDefault("storage.s3.public_read", false)
	v.SetDefault("storage.s3.public_base_url", "")

	v.SetDefault("auth.secret.inline", "")
	v.SetDefault("auth.secret.file", "")

	v.SetDefault("cors.enabled", false)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
//
// The signing secret is not resolved here; see keybackend.LoadSigningSecret.
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and the rules that span several fields.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	if err := c.Database.Tables.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	switch galleria.StorageType(c.Storage.Type) {
	case galleria.StorageFilesystem:
		if c.Storage.Path == "" {
			return errors.New("validate config: storage.path is required for filesystem storage")
		}
	case galleria.StorageS3:
		if c.Storage.S3.Bucket == "" {
			return errors.New("validate config: storage.s3.bucket is required for s3 storage")
		}
	}

	return nil
}
