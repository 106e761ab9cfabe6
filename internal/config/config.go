package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config хранит все настройки сервиса
type Config struct {
	HTTP     HTTPConfig  `yaml:"http"`
	Database DBConfig    `yaml:"database"`
	Model    ModelConfig `yaml:"model"`
	Redis    RedisConfig `yaml:"redis"`
	Auth     AuthConfig  `yaml:"auth"`
	Tasks    TasksConfig `yaml:"tasks"`
}

// HTTPConfig хранит параметры HTTP-сервера
type HTTPConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
	MaxUploadMB int64    `yaml:"max_upload_mb"`
}

// DBConfig хранит параметры подключения к базе данных
type DBConfig struct {
	URL          string `yaml:"url"`    // DATABASE_URL, перекрывает остальные поля
	Driver       string `yaml:"driver"` // postgres | sqlite
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	DBName       string `yaml:"dbname"`
	SSLMode      string `yaml:"sslmode"`
	SQLitePath   string `yaml:"sqlite_path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// ModelConfig хранит параметры внешней мультимодальной модели
type ModelConfig struct {
	APIKey  string        `yaml:"api_key"`
	Name    string        `yaml:"name"`
	Timeout time.Duration `yaml:"timeout"` // 0 — без ограничения
}

// RedisConfig хранит параметры кэша ответов модели. Пустой Addr отключает кэш.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// AuthConfig хранит секрет для проверки токенов на загрузку афиш. Пустой секрет отключает проверку.
type AuthConfig struct {
	UploadSecret string `yaml:"upload_secret"`
}

// TasksConfig хранит расписания фоновых задач
type TasksConfig struct {
	UpcomingRefreshCron string `yaml:"upcoming_refresh_cron"`
}

// DSN генерирует строку подключения для PostgreSQL. Если задан URL, возвращается он.
func (db *DBConfig) DSN() string {
	if db.URL != "" && db.Driver == "postgres" {
		return db.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.DBName, db.SSLMode)
}

// DefaultConfig возвращает конфигурацию с параметрами по умолчанию
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
			MaxUploadMB: 10,
		},
		Database: DBConfig{
			Driver:       "postgres",
			Host:         "localhost",
			Port:         5432,
			User:         "postgres",
			Password:     "postgres",
			DBName:       "poster_db",
			SSLMode:      "disable",
			SQLitePath:   "posters.db",
			MaxOpenConns: 10,
		},
		Model: ModelConfig{
			Name: "gemini-2.0-flash",
		},
		Redis: RedisConfig{
			TTL: 24 * time.Hour,
		},
		Tasks: TasksConfig{
			UpcomingRefreshCron: "0 */5 * * * *",
		},
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл (если указан),
// затем .env и переменные окружения.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if os.Getenv("ENV_CHEK") == "" {
		if err := godotenv.Load(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load .env: %w", err)
			}
		} else {
			log.Println("Подключение к .env")
		}
	}

	cfg.ParseEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// ParseEnv обновляет конфигурацию из переменных окружения
func (c *Config) ParseEnv() {
	setString(&c.HTTP.Addr, "HTTP_ADDR")
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.HTTP.CORSOrigins = splitList(origins)
	}
	setInt64(&c.HTTP.MaxUploadMB, "MAX_UPLOAD_MB")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")
	setInt(&c.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS")
	setString(&c.Database.URL, "DATABASE_URL")
	if c.Database.URL != "" {
		if err := c.Database.applyURL(); err != nil {
			log.Printf("Ошибка парсинга DATABASE_URL: %v", err)
		}
	}

	setString(&c.Model.APIKey, "GOOGLE_API_KEY")
	setString(&c.Model.Name, "GEMINI_MODEL")
	setDuration(&c.Model.Timeout, "MODEL_TIMEOUT")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")
	setDuration(&c.Redis.TTL, "CACHE_TTL")

	setString(&c.Auth.UploadSecret, "JWT_UPLOAD_SECRET")
	setString(&c.Tasks.UpcomingRefreshCron, "UPCOMING_REFRESH_CRON")
}

// applyURL выбирает драйвер по схеме URL в формате SQLAlchemy:
// postgresql[+driver]://... или sqlite:///path.
func (db *DBConfig) applyURL() error {
	scheme, rest, ok := strings.Cut(db.URL, "://")
	if !ok {
		return fmt.Errorf("no scheme in %q", db.URL)
	}
	base, _, _ := strings.Cut(strings.ToLower(scheme), "+")

	switch base {
	case "postgres", "postgresql":
		db.Driver = "postgres"
		db.URL = "postgresql://" + rest
	case "sqlite":
		path := strings.TrimPrefix(rest, "/")
		if path == "" {
			return errors.New("sqlite URL has no path")
		}
		db.Driver = "sqlite"
		db.SQLitePath = path
	default:
		return fmt.Errorf("unsupported scheme %q", scheme)
	}
	return nil
}

// Validate проверяет настройки, без которых сервис не может работать
func (c *Config) Validate(requireModel bool) error {
	if c.Database.URL != "" {
		if err := c.Database.applyURL(); err != nil {
			return fmt.Errorf("DATABASE_URL: %w", err)
		}
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.HTTP.MaxUploadMB <= 0 {
		return errors.New("max upload size must be positive")
	}
	if requireModel && c.Model.APIKey == "" {
		return errors.New("GOOGLE_API_KEY is not set")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ошибка парсинга %s: %v", key, err)
		return
	}
	*dst = n
}

func setInt64(dst *int64, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Ошибка парсинга %s: %v", key, err)
		return
	}
	*dst = n
}

func setDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Ошибка парсинга %s: %v", key, err)
		return
	}
	*dst = d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
