package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Telegram    TelegramConfig    `mapstructure:"telegram"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Admin       AdminConfig       `mapstructure:"admin"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Static      StaticConfig      `mapstructure:"static"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	Enabled         bool   `mapstructure:"enabled"`
}

type TelegramConfig struct {
	Token           string `mapstructure:"token"`
	WebhookURL      string `mapstructure:"webhook_url"`
	WebhookSecret   string `mapstructure:"webhook_secret"`
	GameShortName   string `mapstructure:"game_short_name"`
	PublicGameURL   string `mapstructure:"public_game_url"`
	AnnounceRecords bool   `mapstructure:"announce_records"`
	Timeout         int    `mapstructure:"timeout"`
}

// AuthConfig holds the credentials used to verify score submissions.
// ScoreSecret is the legacy shared secret; an empty value disables the
// legacy HMAC path entirely.
type AuthConfig struct {
	ScoreSecret string `mapstructure:"score_secret"`
}

type AdminConfig struct {
	Secret string `mapstructure:"secret"`
}

type LeaderboardConfig struct {
	MaxLimit int `mapstructure:"max_limit"`
}

type StaticConfig struct {
	Root string   `mapstructure:"root"`
	Dirs []string `mapstructure:"dirs"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.allowed_origins", []string{"*"})

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "kapirun")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 300)
	viper.SetDefault("database.enabled", true)

	viper.SetDefault("telegram.token", "")
	viper.SetDefault("telegram.webhook_url", "")
	viper.SetDefault("telegram.webhook_secret", "")
	viper.SetDefault("telegram.game_short_name", "kapi_run")
	viper.SetDefault("telegram.public_game_url", "")
	viper.SetDefault("telegram.announce_records", true)
	viper.SetDefault("telegram.timeout", 30)

	viper.SetDefault("auth.score_secret", "")

	viper.SetDefault("admin.secret", "")

	viper.SetDefault("leaderboard.max_limit", 200)

	viper.SetDefault("static.root", ".")
	viper.SetDefault("static.dirs", []string{"images", "scripts", "media", "icons"})
}
