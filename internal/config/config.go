// Package config loads the fieldschema command's settings from the
// environment, after merging any .env files.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrLoadingDotenv = errors.New("failed to load .env file")
)

// Config is the command's own configuration. Backend-specific settings
// (PG_CONN_URL, MONGODB_URL, ...) are read by their packages' Config types
// through [Load] when the backend is selected.
type Config struct {
	LogLevel  string `env:"FIELDSCHEMA_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"FIELDSCHEMA_LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`

	Schema  string `env:"FIELDSCHEMA_SCHEMA"`
	Mode    string `env:"FIELDSCHEMA_MODE" validate:"omitempty,oneof=first_failure collect_all"`
	Lenient bool   `env:"FIELDSCHEMA_LENIENT" envDefault:"false"`

	Addr        string        `env:"FIELDSCHEMA_ADDR" envDefault:":8080"`
	CallTimeout time.Duration `env:"FIELDSCHEMA_CALL_TIMEOUT" envDefault:"5s" validate:"gt=0"`

	Store    string        `env:"FIELDSCHEMA_STORE" envDefault:"none" validate:"oneof=none postgres mongo gorm opensearch"`
	RedisURL string        `env:"REDIS_URL"`
	TypeTTL  time.Duration `env:"FIELDSCHEMA_TYPE_TTL" envDefault:"1h"`

	Classifier  string `env:"FIELDSCHEMA_CLASSIFIER" envDefault:"none" validate:"oneof=none openai google"`
	OpenAIKey   string `env:"OPENAI_API_KEY" validate:"required_if=Classifier openai"`
	OpenAIModel string `env:"OPENAI_MODEL"`
	GoogleKey   string `env:"GOOGLE_API_KEY" validate:"required_if=Classifier google"`
	GoogleModel string `env:"GOOGLE_MODEL"`

	S3Fields []string `env:"FIELDSCHEMA_S3_FIELDS" envSeparator:","`
}

var validate = validator.New()

// Load reads files into the environment (missing files are skipped, and
// variables already set win) and parses a T from it. T's validate tags are
// checked.
func Load[T any](files ...string) (T, error) {
	var v T
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return v, errors.Join(ErrLoadingDotenv, err)
		}
	}
	if err := env.Parse(&v); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	if err := validate.Struct(&v); err != nil {
		return v, errors.Join(ErrInvalidConfig, err)
	}
	return v, nil
}
