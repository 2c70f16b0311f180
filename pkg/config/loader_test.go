package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/config"
)

type appConfig struct {
	Name         string   `env:"TEST_APP_NAME"`
	Port         int      `env:"TEST_APP_PORT" envDefault:"3000"`
	Tags         []string `env:"TEST_APP_TAGS" envSeparator:","`
	Quoted       string   `env:"TEST_APP_QUOTED"`
	OnlyOverride string   `env:"TEST_APP_ONLY_OVERRIDE"`
}

type requiredConfig struct {
	Token string `env:"TOKEN,required"`
}

func TestLoad_WithEnvironment(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load[appConfig](config.WithEnvironment(map[string]string{
		"TEST_APP_NAME": "portfolio",
		"TEST_APP_TAGS": "x,y",
	}))
	require.NoError(t, err)
	assert.Equal(t, "portfolio", cfg.Name)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, []string{"x", "y"}, cfg.Tags)
}

func TestLoad_Prefix(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load[requiredConfig](
		config.WithPrefix("EMAILJS_"),
		config.WithEnvironment(map[string]string{"EMAILJS_TOKEN": "abc"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.Token)
}

func TestLoad_Required(t *testing.T) {
	t.Parallel()

	_, err := config.Load[requiredConfig](config.WithEnvironment(map[string]string{}))
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() {
		config.MustLoad[requiredConfig](config.WithEnvironment(map[string]string{}))
	})
	assert.NotPanics(t, func() {
		config.MustLoad[requiredConfig](config.WithEnvironment(map[string]string{"TOKEN": "x"}))
	})
}

// Not parallel: mutates the process environment.
func TestLoadEnv(t *testing.T) {
	keys := []string{"TEST_APP_NAME", "TEST_APP_PORT", "TEST_APP_TAGS", "TEST_APP_QUOTED", "TEST_APP_ONLY_OVERRIDE"}
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("TEST_APP_PORT", "9090")

	require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))

	cfg, err := config.Load[appConfig]()
	require.NoError(t, err)
	assert.Equal(t, "override", cfg.Name)
	assert.Equal(t, 9090, cfg.Port, "process environment wins over files")
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
	assert.Equal(t, "quoted value", cfg.Quoted)
	assert.Equal(t, "yes", cfg.OnlyOverride)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	t.Parallel()

	err := config.LoadEnv("testdata/missing.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnv)
	assert.NoError(t, config.LoadEnv())
}
