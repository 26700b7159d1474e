package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/internal/grad"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := `# binary adder
example: adder
bits: 3
arch: [6, 12, 9, 4]
packed: true
method: finite-diff
epsilon: 0.01
central: true
optimizer: sgd
momentum: 0.5
rate: 6
aggression: 0.8
max_steps: 20000
batch_size: 20
target_rank: 3
seed: 42
seeds: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "adder", cfg.Example)
	assert.Equal(t, 3, cfg.Bits)
	assert.Equal(t, []int{6, 12, 9, 4}, cfg.Arch)
	assert.True(t, cfg.Packed)
	assert.Equal(t, "finite-diff", cfg.Method)
	assert.Equal(t, float32(0.01), cfg.Epsilon)
	assert.True(t, cfg.Central)
	assert.Equal(t, float32(0.5), cfg.Momentum)
	assert.Equal(t, float32(6), cfg.Rate)
	assert.Equal(t, float32(0.8), cfg.Aggression)
	assert.Equal(t, 20000, cfg.MaxSteps)
	assert.Equal(t, 20, cfg.BatchSize)
	assert.Equal(t, 3, cfg.TargetRank)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 4, cfg.Seeds)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, grad.MethodFiniteDiff, opts.Method)
	assert.Equal(t, 20, opts.BatchSize)
	assert.True(t, opts.Central)
}

func TestParse_KeepsDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("example: or\n"))
	require.NoError(t, err)

	want := Default()
	want.Example = "or"
	assert.Equal(t, want, cfg)
	require.NoError(t, cfg.Validate())

	cfg, err = Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader("learning_rate: 1\n"))
	assert.Error(t, err, "unknown key")

	_, err = Parse(strings.NewReader("max_steps: lots\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{
		Example:   "adder",
		Bits:      4,
		Arch:      []int{8, 16, 5},
		Rate:      2.5,
		MaxSteps:  123,
		Seed:      9,
		Seeds:     3,
		Packed:    true,
		Optimizer: "adam",
	})

	assert.Equal(t, "adder", cfg.Example)
	assert.Equal(t, 4, cfg.Bits)
	assert.Equal(t, []int{8, 16, 5}, cfg.Arch)
	assert.Equal(t, float32(2.5), cfg.Rate)
	assert.Equal(t, 123, cfg.MaxSteps)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 3, cfg.Seeds)
	assert.True(t, cfg.Packed)
	assert.Equal(t, "adam", cfg.Optimizer)

	// zero overrides keep existing values
	cfg.ApplyOverrides(Overrides{})
	assert.Equal(t, 123, cfg.MaxSteps)
	assert.Equal(t, Default().BatchSize, cfg.BatchSize)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty example", func(c *Config) { c.Example = "" }},
		{"adder bits", func(c *Config) { c.Example = "adder"; c.Bits = 0 }},
		{"arch too short", func(c *Config) { c.Arch = []int{3} }},
		{"arch zero width", func(c *Config) { c.Arch = []int{2, 0, 1} }},
		{"activation", func(c *Config) { c.Activation = "softmax" }},
		{"init", func(c *Config) { c.Init = "he" }},
		{"method", func(c *Config) { c.Method = "newton" }},
		{"epsilon", func(c *Config) { c.Method = "fd"; c.Epsilon = 0 }},
		{"optimizer", func(c *Config) { c.Optimizer = "rmsprop" }},
		{"momentum", func(c *Config) { c.Momentum = 1 }},
		{"rate", func(c *Config) { c.Rate = 0 }},
		{"aggression", func(c *Config) { c.Aggression = -1 }},
		{"max steps", func(c *Config) { c.MaxSteps = 0 }},
		{"batch size", func(c *Config) { c.BatchSize = -1 }},
		{"target rank", func(c *Config) { c.TargetRank = 11 }},
		{"seeds", func(c *Config) { c.Seeds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
