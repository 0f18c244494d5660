package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Redis      RedisConfig      `mapstructure:"redis"      validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Enrollment EnrollmentConfig `mapstructure:"enrollment" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RedisConfig contains the connection settings for the challenge store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=0,lte=31"`
}

// EnrollmentConfig tunes the one-time-code flow. The resend cooldown is the
// client-visible countdown seed; the code TTL and attempt budget are the
// server-side limits backing it.
type EnrollmentConfig struct {
	CodeTTLMinutes        int `mapstructure:"code_ttl_minutes"        validate:"required,gt=0"`
	ResendCooldownSeconds int `mapstructure:"resend_cooldown_seconds" validate:"required,gt=0"`
	MaxVerifyAttempts     int `mapstructure:"max_verify_attempts"     validate:"required,gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`
}

// SMTPConfig configures outbound verification email. When Host is empty the
// server falls back to logging codes instead of sending them, which is only
// acceptable for local development.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}
