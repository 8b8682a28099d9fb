package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/angeloszaimis/static-server/internal/contenttype"
	"github.com/angeloszaimis/static-server/internal/resolver"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	DefaultPort        = 8000
	DefaultRoot        = "./public"
	DefaultFileName    = "index.html"
	DefaultEnvFile     = ".env"
	DefaultMetricsSize = 1000
)

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Environment  string `mapstructure:"environment"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
	IdleTimeout  string `mapstructure:"idle_timeout"`
}

type StaticConfig struct {
	Root        string `mapstructure:"root"`
	DefaultFile string `mapstructure:"default_file"`
	Debug       bool   `mapstructure:"debug"`
}

type AdminConfig struct {
	Address string `mapstructure:"address"`
}

type HealthCheckConfig struct {
	Interval string `mapstructure:"interval"`
}

type MetricsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Static      StaticConfig      `mapstructure:"static"`
	Admin       AdminConfig       `mapstructure:"admin"`
	HealthCheck HealthCheckConfig `mapstructure:"health_check"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(DefaultEnvFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read env file", slog.String("error", err.Error()))
			return nil, err
		}
	} else {
		slog.Info("loaded env file", slog.String("file", DefaultEnvFile))
	}

	v := viper.New()

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.environment", EnvDev)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("static.root", DefaultRoot)
	v.SetDefault("static.default_file", DefaultFileName)
	v.SetDefault("static.debug", true)
	v.SetDefault("admin.address", "")
	v.SetDefault("health_check.interval", "10s")
	v.SetDefault("metrics.buffer_size", DefaultMetricsSize)
	v.SetDefault("logging.level", LogLevelInfo)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Host, is.Host),
					validation.Field(&sc.Port,
						validation.Required,
						validation.Min(1),
						validation.Max(65535),
					),
					validation.Field(&sc.ReadTimeout, validation.Required, validation.By(validateDuration)),
					validation.Field(&sc.WriteTimeout, validation.Required, validation.By(validateDuration)),
					validation.Field(&sc.IdleTimeout, validation.Required, validation.By(validateDuration)),
				)
			}),
		),
		validation.Field(&c.Static,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(StaticConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a StaticConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Root, validation.Required),
					validation.Field(&sc.DefaultFile,
						validation.Required,
						validation.By(validateDefaultFile),
					),
				)
			}),
		),
		validation.Field(&c.Admin,
			validation.By(func(value interface{}) error {
				ac, ok := value.(AdminConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be an AdminConfig")
				}
				return validation.ValidateStruct(&ac,
					validation.Field(&ac.Address, validation.By(validateHostPort)),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.HealthCheck,
			validation.Required,
			validation.By(func(value interface{}) error {
				hc, ok := value.(HealthCheckConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a HealthCheckConfig")
				}
				return validation.ValidateStruct(&hc,
					validation.Field(&hc.Interval,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Metrics,
			validation.Required,
			validation.By(func(value interface{}) error {
				mc, ok := value.(MetricsConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a MetricsConfig")
				}
				return validation.ValidateStruct(&mc,
					validation.Field(&mc.BufferSize, validation.Required, validation.Min(1)),
				)
			}),
		),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if addr == "" {
		return nil
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	if d <= 0 {
		return validation.NewError("validation_invalid_duration", "must be positive")
	}

	return nil
}

func validateDefaultFile(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if strings.ContainsRune(name, '/') {
		return validation.NewError("validation_invalid_default_file", "must be a file name, not a path")
	}

	ext := resolver.Extension(name, "")
	if !contenttype.Default().Supports(ext) {
		return validation.NewError("validation_unsupported_default_file",
			"extension must be one of "+strings.Join(contenttype.Default().Extensions(), ", "))
	}

	return nil
}
