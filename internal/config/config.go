package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Essays   EssaysConfig
	LLM      LLMConfig
	OCR      OCRConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
	MaxUploadBytes int64
}

// StorageConfig selects the record store backend: "file", "sqlite" or "postgres".
type StorageConfig struct {
	Driver     string
	DataDir    string
	SQLitePath string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type EssaysConfig struct {
	Root string
}

type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OCRConfig selects the text recognizer: "vision" or "tesseract".
type OCRConfig struct {
	Provider       string
	VisionAPIKey   string
	VisionEndpoint string
	TesseractLang  string
	Timeout        time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_BYTES", 20<<20)
	v.SetDefault("STORAGE_DRIVER", "file")
	v.SetDefault("STORAGE_DATA_DIR", "./data")
	v.SetDefault("STORAGE_SQLITE_PATH", "./data/grader.db")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "grader")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_NAME", "grader")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("ESSAYS_ROOT", "./essays")
	v.SetDefault("LLM_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("LLM_MODEL", "gpt-4")
	v.SetDefault("LLM_TIMEOUT", "60s")
	v.SetDefault("OCR_PROVIDER", "vision")
	v.SetDefault("VISION_ENDPOINT", "https://vision.googleapis.com/v1/images:annotate")
	v.SetDefault("TESSERACT_LANG", "eng")
	v.SetDefault("OCR_TIMEOUT", "30s")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	apiKey := v.GetString("LLM_API_KEY")
	if apiKey == "" {
		apiKey = v.GetString("OPENAI_API_KEY")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("SERVER_HOST"),
			Port:           v.GetInt("SERVER_PORT"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(v.GetString("STORAGE_DRIVER")),
			DataDir:    v.GetString("STORAGE_DATA_DIR"),
			SQLitePath: v.GetString("STORAGE_SQLITE_PATH"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: duration(v, "DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Essays: EssaysConfig{
			Root: v.GetString("ESSAYS_ROOT"),
		},
		LLM: LLMConfig{
			BaseURL: v.GetString("LLM_BASE_URL"),
			APIKey:  apiKey,
			Model:   v.GetString("LLM_MODEL"),
			Timeout: duration(v, "LLM_TIMEOUT", 60*time.Second),
		},
		OCR: OCRConfig{
			Provider:       strings.ToLower(v.GetString("OCR_PROVIDER")),
			VisionAPIKey:   v.GetString("VISION_API_KEY"),
			VisionEndpoint: v.GetString("VISION_ENDPOINT"),
			TesseractLang:  v.GetString("TESSERACT_LANG"),
			Timeout:        duration(v, "OCR_TIMEOUT", 30*time.Second),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	switch c.OCR.Provider {
	case "vision", "tesseract":
	default:
		return fmt.Errorf("unknown OCR_PROVIDER %q", c.OCR.Provider)
	}
	return nil
}

func duration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
