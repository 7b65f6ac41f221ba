package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env-default:"local"`
	DSN     string        `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP    HTTPConfig    `yaml:"http"`
	Redis   RedisConfig   `yaml:"redis"`
	Sanity  SanityConfig  `yaml:"sanity"`
	Webhook WebhookConfig `yaml:"webhook"`
	Admin   AdminConfig   `yaml:"admin"`
	Content ContentConfig `yaml:"content"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"8080"`
}

type RedisConfig struct {
	RedisAddr     string `yaml:"redis_addr" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

// SanityConfig holds the content-store connection parameters. BaseURL is
// derived from the project ID unless overridden (tests point it at httptest).
type SanityConfig struct {
	ProjectID  string `yaml:"project_id" env:"SANITY_PROJECT_ID"`
	Dataset    string `yaml:"dataset" env-default:"production"`
	Token      string `yaml:"token" env:"SANITY_API_TOKEN"`
	APIVersion string `yaml:"api_version" env-default:"2024-01-01"`
	BaseURL    string `yaml:"base_url"`
}

type WebhookConfig struct {
	// Secret is optional; when empty the creation branch skips the
	// shared-secret check entirely.
	Secret string `yaml:"secret" env:"WEBHOOK_SECRET"`
}

type AdminConfig struct {
	Email        string        `yaml:"email"`
	PasswordHash string        `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	JWTSecret    string        `yaml:"jwt_secret" env:"ADMIN_JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"1h"`
}

// ContentConfig carries the fixed document references used when creating
// posts. These are process-wide constants with no lifecycle.
type ContentConfig struct {
	AuthorID          string        `yaml:"author_id" env-default:"author-astra"`
	DefaultCategoryID string        `yaml:"default_category_id" env-default:"category-seo"`
	DefaultReadTime   string        `yaml:"default_read_time" env-default:"5 min"`
	CacheTTL          time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
