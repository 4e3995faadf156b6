package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"vixip/internal/slidetext"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	LLM       LLMConfig
	Transform TransformConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StorageConfig holds deck object storage settings. Backend selects the
// adapter: "memory" for single-process use, "s3" for S3 or any
// S3-compatible endpoint such as MinIO.
type StorageConfig struct {
	Backend       string `mapstructure:"backend"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LLMConfig holds generation backend settings.
type LLMConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// TransformConfig holds the transform protocol settings. The separator is
// shared verbatim between prompt construction and the stream collector.
type TransformConfig struct {
	Separator string `mapstructure:"separator"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the VIXIP prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VIXIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Storage defaults
	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "vixip-decks")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.max_file_size_mb", 50)

	// LLM defaults
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.model", "qwen3:30b")
	v.SetDefault("llm.timeout_secs", 600)

	// Transform defaults
	v.SetDefault("transform.separator", slidetext.DefaultSeparator)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "VIXIP_SERVER_PORT",
		"server.read_timeout":      "VIXIP_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "VIXIP_SERVER_WRITE_TIMEOUT",
		"server.environment":       "VIXIP_SERVER_ENVIRONMENT",
		"storage.backend":          "VIXIP_STORAGE_BACKEND",
		"storage.region":           "VIXIP_STORAGE_REGION",
		"storage.bucket":           "VIXIP_STORAGE_BUCKET",
		"storage.endpoint":         "VIXIP_STORAGE_ENDPOINT",
		"storage.access_key":       "VIXIP_STORAGE_ACCESS_KEY",
		"storage.secret_key":       "VIXIP_STORAGE_SECRET_KEY",
		"storage.max_file_size_mb": "VIXIP_STORAGE_MAX_FILE_SIZE_MB",
		"llm.base_url":             "VIXIP_LLM_BASE_URL",
		"llm.model":                "VIXIP_LLM_MODEL",
		"llm.timeout_secs":         "VIXIP_LLM_TIMEOUT_SECS",
		"transform.separator":      "VIXIP_TRANSFORM_SEPARATOR",
		"cors.allowed_origins":     "VIXIP_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if VIXIP_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("VIXIP_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Storage = StorageConfig{
		Backend:       v.GetString("storage.backend"),
		Region:        v.GetString("storage.region"),
		Bucket:        v.GetString("storage.bucket"),
		Endpoint:      v.GetString("storage.endpoint"),
		AccessKey:     v.GetString("storage.access_key"),
		SecretKey:     v.GetString("storage.secret_key"),
		MaxFileSizeMB: v.GetInt64("storage.max_file_size_mb"),
	}
	cfg.LLM = LLMConfig{
		BaseURL:     v.GetString("llm.base_url"),
		Model:       v.GetString("llm.model"),
		TimeoutSecs: v.GetInt("llm.timeout_secs"),
	}
	cfg.Transform = TransformConfig{
		Separator: v.GetString("transform.separator"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
