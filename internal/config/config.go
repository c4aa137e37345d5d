package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env                 string        `mapstructure:"ENV"`
	Port                string        `mapstructure:"PORT"`
	DatabaseURL         string        `mapstructure:"DATABASE_URL"`
	AdminKey            string        `mapstructure:"ADMIN_KEY"`
	RetellAPIKey        string        `mapstructure:"RETELL_API_KEY"`
	RetellBaseURL       string        `mapstructure:"RETELL_BASE_URL"`
	WebhookBaseURL      string        `mapstructure:"WEBHOOK_BASE_URL"`
	DispatchPhoneNumber string        `mapstructure:"DISPATCH_PHONE_NUMBER"`
	CORSAllowed         string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout      time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("WEBHOOK_BASE_URL", "http://localhost:8080")
	v.SetDefault("DISPATCH_PHONE_NUMBER", "+1234567890")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WebhookURL is the full callback URL registered with Retell agents.
func (c Config) WebhookURL() string {
	return strings.TrimRight(c.WebhookBaseURL, "/") + "/api/webhooks/retell"
}
