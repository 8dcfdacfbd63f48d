package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "LISTING"

// Default values applied before any other source.
const (
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
	DefaultImageModel     = "gemini-2.5-flash-image"
	DefaultTextModel      = "gemini-2.5-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultRequestTimeout = "90s"
	DefaultMaxBytes       = 20 << 20
)

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":       "log.level",
	"log-format":      "log.format",
	"copy-provider":   "llm.copy_provider",
	"request-timeout": "llm.request_timeout",
}

// Load configuration from a .env file, an optional YAML file, environment
// variables and the given flag set, in increasing order of precedence.
// flags may be nil. Returns a populated Config or an error if
// loading/validation fails.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// A missing .env file is not an error; the process environment still applies.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider keys are also honoured under their conventional names.
	if err := v.BindEnv("llm.gemini_api_key", EnvPrefix+"_LLM_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}
	if err := v.BindEnv("llm.openai_api_key", EnvPrefix+"_LLM_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks a Config against its validation tags.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	// Empty defaults register the keys so AutomaticEnv values reach Unmarshal.
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.image_model", DefaultImageModel)
	v.SetDefault("llm.text_model", DefaultTextModel)
	v.SetDefault("llm.copy_provider", CopyProviderGemini)
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.openai_model", DefaultOpenAIModel)
	v.SetDefault("llm.openai_base_url", "")
	v.SetDefault("llm.request_timeout", DefaultRequestTimeout)

	v.SetDefault("acquire.max_bytes", DefaultMaxBytes)
	v.SetDefault("acquire.accepted_mime_types", []string{"image/png", "image/jpeg", "image/webp"})
}

// readConfigFile reads the file named by the --config flag or LISTING_CONFIG.
// Without an explicit path, listing-studio.yaml in the working directory is
// used when present.
func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	path := os.Getenv(EnvPrefix + "_CONFIG")
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			path = f.Value.String()
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("listing-studio")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
