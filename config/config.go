package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log        Logger          `mapstructure:"logger"`
	DB         Database        `mapstructure:"database"`
	API        API             `mapstructure:"api"`
	Auth       Auth            `mapstructure:"auth"`
	Perplexity Perplexity      `mapstructure:"perplexity"`
	AI         AI              `mapstructure:"ai"`
	Research   Research        `mapstructure:"research"`
	Cache      Cache           `mapstructure:"cache"`
	Scheduler  Scheduler       `mapstructure:"scheduler"`
	Telegram   TelegramConfig  `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Auth struct {
	Secret          string        `mapstructure:"secret"`
	PasswordHash    string        `mapstructure:"password_hash"`
	SessionDuration time.Duration `mapstructure:"session_duration"`
}

type Perplexity struct {
	APIKey           string        `mapstructure:"api_key"`
	BaseURL          string        `mapstructure:"base_url"`
	Model            string        `mapstructure:"model"`
	MaxTokens        int           `mapstructure:"max_tokens"`
	Temperature      float64       `mapstructure:"temperature"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
}

// Generation providers selectable via ai.provider.
const (
	AIProviderClaude = "claude"
	AIProviderGemini = "gemini"
)

type AI struct {
	Provider         string        `mapstructure:"provider"`
	AnthropicAPIKey  string        `mapstructure:"anthropic_api_key"`
	GeminiAPIKey     string        `mapstructure:"gemini_api_key"`
	AnalysisModel    string        `mapstructure:"analysis_model"`
	ScanModel        string        `mapstructure:"scan_model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
}

type Research struct {
	SearchConcurrency  int `mapstructure:"search_concurrency"`
	AnalysisMaxTokens  int `mapstructure:"analysis_max_tokens"`
	ScanMaxTokens      int `mapstructure:"scan_max_tokens"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Scheduler struct {
	PortfolioScanCron string `mapstructure:"portfolio_scan_cron"`
	WatchlistScanCron string `mapstructure:"watchlist_scan_cron"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

func Load() (*Config, error) {
	// .env is optional; env vars win either way.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.port", 5432)

	viper.SetDefault("api.port", 8080)

	viper.SetDefault("auth.session_duration", 7*24*time.Hour)

	viper.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	viper.SetDefault("perplexity.model", "sonar-pro")
	viper.SetDefault("perplexity.max_tokens", 8192)
	viper.SetDefault("perplexity.temperature", 0.1)
	viper.SetDefault("perplexity.timeout", 2*time.Minute)
	viper.SetDefault("perplexity.max_request_per_min", 50)

	viper.SetDefault("ai.provider", AIProviderClaude)
	viper.SetDefault("ai.analysis_model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("ai.scan_model", "claude-3-5-haiku-20241022")
	viper.SetDefault("ai.timeout", 5*time.Minute)
	viper.SetDefault("ai.max_request_per_min", 30)

	viper.SetDefault("research.search_concurrency", 3)
	viper.SetDefault("research.analysis_max_tokens", 16384)
	viper.SetDefault("research.scan_max_tokens", 4096)

	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
}
