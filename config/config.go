package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Discord    DiscordConfig
	Cloudinary CloudinaryConfig
	Art        ArtConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// APIKey authenticates the bot front end on the /art routes.
	APIKey string
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OAuthConfig struct {
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURL  string
}

type DiscordConfig struct {
	// BotToken is used only for direct-message notifications. Empty disables DMs.
	BotToken string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type ArtConfig struct {
	// Timezone is the IANA zone whose midnight bounds the daily submission window.
	Timezone string
	// DigestHour is the local hour (0-23) at which the pending-review digest runs.
	DigestHour int
	// Seed admin credentials for the back office; created once on startup.
	AdminEmail    string
	AdminPassword string
}

// Load reads the yaml file at path (missing file is fine) with ARTDEX_*
// environment overrides, e.g. ARTDEX_DATABASE_DSN.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("artdex")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8099")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.api_key", "")
	v.SetDefault("database.dsn", "artdex:artdex@tcp(localhost:3306)/artdex?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("jwt.access_secret", "change-me-in-production")
	v.SetDefault("jwt.refresh_secret", "change-me-refresh")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "artdex")
	v.SetDefault("art.timezone", "Local")
	v.SetDefault("art.digest_hour", 9)
	v.SetDefault("art.admin_email", "admin@artdex.local")
	v.SetDefault("art.admin_password", "")

	if err := v.ReadInConfig(); err != nil {
		if !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			Env:          v.GetString("server.env"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			APIKey:       v.GetString("server.api_key"),
		},
		Database: DatabaseConfig{
			DSN:             v.GetString("database.dsn"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		JWT: JWTConfig{
			AccessSecret:  v.GetString("jwt.access_secret"),
			RefreshSecret: v.GetString("jwt.refresh_secret"),
			AccessExpiry:  v.GetDuration("jwt.access_expiry"),
			RefreshExpiry: v.GetDuration("jwt.refresh_expiry"),
			Issuer:        v.GetString("jwt.issuer"),
		},
		OAuth: OAuthConfig{
			DiscordClientID:     v.GetString("oauth.discord_client_id"),
			DiscordClientSecret: v.GetString("oauth.discord_client_secret"),
			DiscordRedirectURL:  v.GetString("oauth.discord_redirect_url"),
		},
		Discord: DiscordConfig{
			BotToken: v.GetString("discord.bot_token"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: v.GetString("cloudinary.cloud_name"),
			APIKey:    v.GetString("cloudinary.api_key"),
			APISecret: v.GetString("cloudinary.api_secret"),
		},
		Art: ArtConfig{
			Timezone:      v.GetString("art.timezone"),
			DigestHour:    v.GetInt("art.digest_hour"),
			AdminEmail:    v.GetString("art.admin_email"),
			AdminPassword: v.GetString("art.admin_password"),
		},
	}
	return cfg, nil
}

// Location resolves the configured daily-window timezone.
func (c *ArtConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func isMissingFile(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "no such file")
}
