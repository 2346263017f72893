package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	RateLimitPerMinute int    `mapstructure:"rate_limit_per_minute" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// SMTPConfig contains settings for the outbound mail transport.
// Notifications are disabled when Host is empty.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"gte=0,lt=65536"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// NotifyConfig contains settings for the notification dispatcher.
type NotifyConfig struct {
	Workers    int    `mapstructure:"workers" validate:"gte=0"`
	QueueSize  int    `mapstructure:"queue_size" validate:"gte=0"`
	APIBaseURL string `mapstructure:"api_base_url"`
	AdminEmail string `mapstructure:"admin_email"`
}
