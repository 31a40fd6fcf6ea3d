package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/mazesearch"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 31, cfg.Cols)
	require.Equal(t, 21, cfg.Rows)
	require.Equal(t, 15*time.Millisecond, cfg.StepInterval)
	require.Equal(t, 3*time.Second, cfg.Cooldown)
	require.Equal(t, time.Second/60, cfg.FrameInterval())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"cols":      func(c *Config) { c.Cols = 0 },
		"rows":      func(c *Config) { c.Rows = -2 },
		"cell size": func(c *Config) { c.CellSize = 1 },
		"interval":  func(c *Config) { c.StepInterval = 0 },
		"cooldown":  func(c *Config) { c.Cooldown = -time.Second },
		"fps":       func(c *Config) { c.FPS = 0 },
		"generator": func(c *Config) { c.Generator = mazesearch.Generator(42) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	zeroCooldown := Default()
	zeroCooldown.Cooldown = 0
	require.NoError(t, zeroCooldown.Validate())
}

func TestRegisterFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	err := fs.Parse([]string{"-cols", "9", "-rows", "5", "-step_interval", "2ms", "-seed", "77", "-generator", "kruskal"})
	require.NoError(t, err)
	require.Equal(t, 9, cfg.Cols)
	require.Equal(t, 5, cfg.Rows)
	require.Equal(t, 2*time.Millisecond, cfg.StepInterval)
	require.Equal(t, int64(77), cfg.Seed)
	require.Equal(t, mazesearch.Kruskal, cfg.Generator)
	require.Equal(t, 3*time.Second, cfg.Cooldown, "untouched flags keep defaults")
}

func TestApplyEnv(t *testing.T) {
	env := func(values map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			v, ok := values[key]
			return v, ok
		}
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(env(nil)))
	require.Equal(t, ":8080", cfg.Addr)

	require.NoError(t, cfg.ApplyEnv(env(map[string]string{"PORT": "9000"})))
	require.Equal(t, ":9000", cfg.Addr)

	cfg.Addr = "127.0.0.1:8080"
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{"PORT": "7000"})))
	require.Equal(t, "127.0.0.1:7000", cfg.Addr)

	require.ErrorIs(t, cfg.ApplyEnv(env(map[string]string{"PORT": "http"})), ErrInvalid)
}
