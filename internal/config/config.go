package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	Acquire AcquireConfig `mapstructure:"acquire" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// Copy providers selectable through LLMConfig.CopyProvider.
const (
	CopyProviderGemini = "gemini"
	CopyProviderOpenAI = "openai"
)

// LLMConfig contains all generative-AI integration settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ImageModel   string `mapstructure:"image_model" validate:"required"`
	TextModel    string `mapstructure:"text_model" validate:"required"`

	// CopyProvider selects the backend for listing copy. Images always use Gemini.
	CopyProvider  string `mapstructure:"copy_provider" validate:"required,oneof=gemini openai"`
	OpenAIAPIKey  string `mapstructure:"openai_api_key" validate:"required_if=CopyProvider openai"`
	OpenAIModel   string `mapstructure:"openai_model" validate:"required_if=CopyProvider openai"`
	OpenAIBaseURL string `mapstructure:"openai_base_url" validate:"omitempty,url"`

	// RequestTimeout bounds every single provider call.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0s"`
}

// AcquireConfig contains source photo acquisition limits.
type AcquireConfig struct {
	MaxBytes          int64    `mapstructure:"max_bytes" validate:"gt=0"`
	AcceptedMIMETypes []string `mapstructure:"accepted_mime_types" validate:"required,min=1,dive,oneof=image/png image/jpeg image/webp"`
}
