// config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Ops      OpsConfig     `yaml:"ops"`
	Auth     AuthConfig    `yaml:"auth"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	S3       S3Config      `yaml:"s3"`
	Uploads  UploadsConfig `yaml:"uploads"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// HTTPConfig — сетевые настройки основного API-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// OpsConfig — сетевые настройки служебного сервера (livez/healthz/metrics).
type OpsConfig struct {
	Host string `yaml:"host" env:"OPS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"OPS_PORT" env-default:"8081"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (o OpsConfig) Addr() string {
	return net.JoinHostPort(o.Host, o.Port)
}

// AuthConfig содержит параметры выпуска и валидации токенов.
//
// AccessSecret и RefreshSecret — независимые секреты подписи; токены одного
// вида никогда не проверяются секретом другого. Passphrase — симметричная
// парольная фраза для внешнего инструментария деплоя; сервис читает её один
// раз на старте и никак не интерпретирует.
type AuthConfig struct {
	AccessSecret    string        `yaml:"access_token_secret" env:"ACCESS_TOKEN_SECRET" env-required:"true"`
	RefreshSecret   string        `yaml:"refresh_token_secret" env:"REFRESH_TOKEN_SECRET" env-required:"true"`
	Passphrase      string        `yaml:"passphrase" env:"PASSPHRASE"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"2h"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"24h"`
	Issuer          string        `yaml:"issuer" env:"ISSUER" env-default:"hotel-admin-service"`
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — настройки Redis для реестров версий токенов.
// Пустой URL переключает реестры на in-memory реализацию
// (допустимо только для одиночного инстанса).
type RedisConfig struct {
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
}

// S3Config — настройки объектного хранилища изображений (MinIO/S3).
// Пустой Endpoint отключает работу с изображениями.
type S3Config struct {
	Endpoint     string `yaml:"endpoint" env:"S3_ENDPOINT"`
	RootUser     string `yaml:"root_user" env:"S3_ROOT_USER"`
	RootPassword string `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	Bucket       string `yaml:"bucket" env:"S3_BUCKET" env-default:"hotel-admin"`
	PublicURL    string `yaml:"public_url" env:"S3_PUBLIC_URL"`
}

// UploadsConfig — ограничения на загружаемые изображения.
type UploadsConfig struct {
	MaxSizeBytes        int64    `yaml:"max_size_bytes" env:"UPLOAD_MAX_SIZE_BYTES" env-default:"5242880"`
	AllowedContentTypes []string `yaml:"allowed_content_types" env:"UPLOAD_ALLOWED_CONTENT_TYPES" env-default:"image/jpeg,image/png,image/webp"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	load := func() (*Config, error) {
		// 1) Явный путь.
		if path != "" {
			return tryRead(path)
		}

		// 2) CONFIG_PATH.
		if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
			return tryRead(envPath)
		}

		// 3) ./local.yaml.
		if _, err := os.Stat("local.yaml"); err == nil {
			return tryRead("local.yaml")
		}

		// 4) Только ENV.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}

		return &cfg, nil
	}

	c, err := load()
	if err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// validate проверяет инварианты, которые не выражаются тегами cleanenv.
func (c *Config) validate() error {
	// Секреты подписи access- и refresh-токенов не должны быть взаимозаменяемыми.
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("access and refresh token secrets must differ")
	}

	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}

	return nil
}
