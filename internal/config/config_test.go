package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load[Config]()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout)
	assert.Equal(t, "none", cfg.Store)
	assert.Equal(t, "none", cfg.Classifier)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("FIELDSCHEMA_MODE", "collect_all")
	t.Setenv("FIELDSCHEMA_STORE", "postgres")
	t.Setenv("FIELDSCHEMA_S3_FIELDS", "avatar,resume")
	cfg, err := Load[Config]()
	require.NoError(t, err)
	assert.Equal(t, "collect_all", cfg.Mode)
	assert.Equal(t, "postgres", cfg.Store)
	assert.Equal(t, []string{"avatar", "resume"}, cfg.S3Fields)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("FIELDSCHEMA_STORE", "cassandra")
	_, err := Load[Config]()
	require.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("FIELDSCHEMA_STORE", "none")
	t.Setenv("FIELDSCHEMA_CALL_TIMEOUT", "soon")
	_, err = Load[Config]()
	require.ErrorIs(t, err, ErrParsingConfig)
}

func TestLoad_Dotenv(t *testing.T) {
	const key = "FIELDSCHEMA_TEST_DOTENV_ADDR"
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=:9090\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	type addr struct {
		Addr string `env:"FIELDSCHEMA_TEST_DOTENV_ADDR"`
	}
	got, err := Load[addr](path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":9090", got.Addr)
}

func TestLoad_Required(t *testing.T) {
	type pg struct {
		URL string `env:"FIELDSCHEMA_TEST_REQUIRED_URL,required"`
	}
	_, err := Load[pg]()
	require.ErrorIs(t, err, ErrParsingConfig)
}

func TestLoad_ClassifierNeedsKey(t *testing.T) {
	t.Setenv("FIELDSCHEMA_CLASSIFIER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	_, err := Load[Config]()
	require.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load[Config]()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAIKey)
}
