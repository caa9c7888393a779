// Package config loads the director's runtime configuration from DIRECTOR_*
// environment variables and the player's initial settings from YAML.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
)

// Save backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the process configuration
type Config struct {
	// Remote engine. Gemini is disabled when the key is empty.
	GeminiAPIKey     string        `env:"DIRECTOR_GEMINI_API_KEY"`
	GeminiBaseURL    string        `env:"DIRECTOR_GEMINI_BASE_URL"`
	GeminiTextModel  string        `env:"DIRECTOR_GEMINI_TEXT_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiImageModel string        `env:"DIRECTOR_GEMINI_IMAGE_MODEL" envDefault:"imagen-4.0-generate-001"`
	TextTimeout      time.Duration `env:"DIRECTOR_TEXT_TIMEOUT" envDefault:"90s"`
	ImageTimeout     time.Duration `env:"DIRECTOR_IMAGE_TIMEOUT" envDefault:"120s"`

	// Local text engine. Disabled when the URL is empty.
	OllamaURL         string  `env:"DIRECTOR_OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel       string  `env:"DIRECTOR_OLLAMA_MODEL" envDefault:"phi3:mini"`
	OllamaMaxTokens   int     `env:"DIRECTOR_OLLAMA_MAX_TOKENS" envDefault:"512"`
	OllamaTemperature float64 `env:"DIRECTOR_OLLAMA_TEMPERATURE" envDefault:"0.8"`

	// Local image server speaking the OpenAI images API. Disabled when the
	// URL is empty.
	ImageServerURL        string `env:"DIRECTOR_IMAGE_SERVER_URL"`
	ImageServerAPIKey     string `env:"DIRECTOR_IMAGE_SERVER_API_KEY"`
	ImagePerformanceModel string `env:"DIRECTOR_IMAGE_PERFORMANCE_MODEL" envDefault:"tiny-sd"`
	ImageQualityModel     string `env:"DIRECTOR_IMAGE_QUALITY_MODEL" envDefault:"stable-diffusion-v1-5"`

	// Save slots
	SaveBackend   string `env:"DIRECTOR_SAVE_BACKEND" envDefault:"memory"`
	RedisAddr     string `env:"DIRECTOR_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"DIRECTOR_REDIS_PASSWORD"`
	RedisDB       int    `env:"DIRECTOR_REDIS_DB" envDefault:"0"`
	SQLitePath    string `env:"DIRECTOR_SQLITE_PATH" envDefault:"director.db"`

	// SettingsFile is an optional YAML file with the initial player settings
	SettingsFile string `env:"DIRECTOR_SETTINGS_FILE"`

	LogLevel  string `env:"DIRECTOR_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"DIRECTOR_LOG_FORMAT" envDefault:"text"`

	Port int `env:"DIRECTOR_PORT" envDefault:"8080"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &cfg, nil
}

// Validate checks enumerated values and ranges
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("SaveBackend", c.SaveBackend, []string{BackendMemory, BackendRedis, BackendSQLite}, vb)
	errors.ValidateEnum("LogFormat", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)

	if _, err := parseLevel(c.LogLevel); err != nil {
		vb.InvalidField("LogLevel", err.Error())
	}
	if c.SaveBackend == BackendRedis {
		errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	}
	if c.SaveBackend == BackendSQLite {
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	}
	errors.ValidateRange("Port", c.Port, 1, 65535, vb)
	errors.ValidatePositive("OllamaMaxTokens", c.OllamaMaxTokens, vb)
	errors.ValidateRange("OllamaTemperature", c.OllamaTemperature, 0, 2, vb)

	return vb.Build()
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}

// LoadSettings reads the initial player settings. Fields missing from the
// file keep their defaults. An empty path returns the defaults.
func LoadSettings(path string) (entities.Settings, error) {
	settings := entities.DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, errors.NotFoundf("settings file %s not found", path)
		}
		return settings, errors.Wrapf(err, "failed to read settings file %s", path)
	}

	return ParseSettings(data)
}

// ParseSettings decodes YAML settings over the defaults
func ParseSettings(data []byte) (entities.Settings, error) {
	settings := entities.DefaultSettings()

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return entities.DefaultSettings(), errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse settings")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("image_generation_mode", string(settings.ImageMode), []string{
		string(entities.ImageModeNone),
		string(entities.ImageModeCharacter),
		string(entities.ImageModeScene),
		string(entities.ImageModeBoth),
	}, vb)
	errors.ValidateEnum("text_engine", string(settings.TextEngine), []string{
		string(entities.TextEngineGemini),
		string(entities.TextEngineLocal),
	}, vb)
	errors.ValidateEnum("image_engine", string(settings.ImageEngine), []string{
		string(entities.ImageEngineGemini),
		string(entities.ImageEngineLocalPerformance),
		string(entities.ImageEngineLocalQuality),
	}, vb)
	if err := vb.Build(); err != nil {
		return entities.DefaultSettings(), errors.Wrap(err, "invalid settings")
	}

	return settings, nil
}
