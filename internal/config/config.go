package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Credits    CreditsConfig    `mapstructure:"credits"    validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Cutout     CutoutConfig     `mapstructure:"cutout"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// CreditsConfig contains the credit-metering settings.
type CreditsConfig struct {
	// InitialBalance is the credit balance each process starts with.
	InitialBalance int `mapstructure:"initial_balance" validate:"gte=0"`

	// BundleSize is the number of credits added by one purchase.
	BundleSize int `mapstructure:"bundle_size" validate:"required,gt=0"`
}

// GenerationConfig contains all generative-image integration settings.
type GenerationConfig struct {
	// GeminiAPIKey selects the Gemini credential. When absent a placeholder
	// is substituted and calls against the real service will fail.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// ModelName is the Gemini model used for image generation.
	ModelName string `mapstructure:"model_name" validate:"required"`

	// QueueDelaySeconds is how long a queued job waits before its
	// generation batch starts.
	QueueDelaySeconds int `mapstructure:"queue_delay_seconds" validate:"gte=0"`
}

// CutoutConfig contains the background-removal service settings.
type CutoutConfig struct {
	// Endpoint is the background-removal service URL. When empty,
	// removal is skipped and the unprocessed image is used.
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`

	// AssetBaseURL is the remote base path for the removal model assets.
	AssetBaseURL string `mapstructure:"asset_base_url" validate:"omitempty,url"`
}
