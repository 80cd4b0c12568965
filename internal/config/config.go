package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	JWT         JWTConfig
	Email       EmailConfig
	Dispatch    DispatchConfig
	Environment string
	LogLevel    string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// EmailConfig selects the active delivery gateway and its credentials.
// The gateway is chosen once at composition time, never per call.
type EmailConfig struct {
	Provider    string // sendgrid or brevo
	FromEmail   string
	FromName    string
	SendGrid    SendGridConfig
	Brevo       BrevoConfig
	MockGateway bool
}

// SendGridConfig holds SendGrid-specific configuration
type SendGridConfig struct {
	BaseURL string
	APIKey  string
}

// BrevoConfig holds Brevo-specific configuration
type BrevoConfig struct {
	BaseURL string
	APIKey  string
}

// DispatchConfig holds campaign dispatch tuning
type DispatchConfig struct {
	BatchSize          int
	BatchDelay         time.Duration
	SchedulerSpec      string
	UnsubscribeBaseURL string
	AppDownloadURL     string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if the config file is not found, environment variables take over
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "delizza-mailing")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Environment", "development")
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Email.Provider", "sendgrid")
	viper.SetDefault("Email.FromEmail", "contact@delizza.fr")
	viper.SetDefault("Email.FromName", "Pizza Deli'Zza")
	viper.SetDefault("Email.SendGrid.BaseURL", "https://api.sendgrid.com")
	viper.SetDefault("Email.Brevo.BaseURL", "https://api.brevo.com")
	viper.SetDefault("Email.MockGateway", false)
	viper.SetDefault("Dispatch.BatchSize", 500)
	viper.SetDefault("Dispatch.BatchDelay", time.Second)
	viper.SetDefault("Dispatch.SchedulerSpec", "@every 15m")
	viper.SetDefault("Dispatch.UnsubscribeBaseURL", "https://delizza.fr/unsubscribe")
	viper.SetDefault("Dispatch.AppDownloadURL", "https://play.google.com/store/apps/details?id=fr.delizza")
}
