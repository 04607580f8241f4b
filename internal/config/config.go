package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Task        TaskConfig        `mapstructure:"task" validate:"required"`
	Translation TranslationConfig `mapstructure:"translation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Path is the filesystem path of the SQLite database file.
	// The special value ":memory:" opens an in-memory database.
	Path string `mapstructure:"path" validate:"required"`
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0,lte=16"`
	QueueSize   int `mapstructure:"queue_size" validate:"required,gt=0"`
}

// TranslationConfig contains settings for the translation backends.
type TranslationConfig struct {
	// Backend selects which translation provider serves draft builds.
	Backend string `mapstructure:"backend" validate:"required,oneof=gemini openai"`

	// API keys may be empty; a backend without its key runs in a degraded
	// mode where translations are replaced by in-band error markers.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`

	GeminiModel string `mapstructure:"gemini_model" validate:"required"`
	OpenAIModel string `mapstructure:"openai_model" validate:"required"`
}
