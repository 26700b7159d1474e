// Package config loads training run settings from YAML and applies
// command-line overrides on top.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/grad"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
	"github.com/born-ml/mlp/internal/trainer"
)

// Config captures the knobs for one training run. An empty Arch or Activation
// selects the example's own suggestion.
type Config struct {
	Example    string  `yaml:"example"`
	Bits       int     `yaml:"bits"`
	Arch       []int   `yaml:"arch"`
	Activation string  `yaml:"activation"`
	Init       string  `yaml:"init"`
	Packed     bool    `yaml:"packed"`
	Method     string  `yaml:"method"`
	Epsilon    float32 `yaml:"epsilon"`
	Central    bool    `yaml:"central"`
	Optimizer  string  `yaml:"optimizer"`
	Momentum   float32 `yaml:"momentum"`
	Rate       float32 `yaml:"rate"`
	Aggression float32 `yaml:"aggression"`
	MaxSteps   int     `yaml:"max_steps"`
	BatchSize  int     `yaml:"batch_size"`
	TargetRank int     `yaml:"target_rank"`
	Seed       int64   `yaml:"seed"`
	Seeds      int     `yaml:"seeds"` // consecutive seeds trained concurrently, best kept
}

// Overrides captures CLI supplied values. Zero values leave the config alone.
type Overrides struct {
	Example    string
	Bits       int
	Arch       []int
	Activation string
	Method     string
	Optimizer  string
	Rate       float64
	MaxSteps   int
	BatchSize  int
	TargetRank int
	Seed       int64
	Seeds      int
	Packed     bool
}

// Default returns the settings used when no file is given.
func Default() *Config {
	opts := trainer.DefaultOptions()
	return &Config{
		Example:    "xor",
		Bits:       2,
		Init:       string(nn.InitUniform),
		Method:     string(grad.MethodBackprop),
		Epsilon:    opts.Epsilon,
		Optimizer:  string(optim.KindSGD),
		Rate:       opts.Rate,
		MaxSteps:   opts.MaxSteps,
		BatchSize:  opts.BatchSize,
		TargetRank: opts.TargetRank,
		Seed:       1,
		Seeds:      1,
	}
}

// Load reads and validates a Config from a YAML file. Keys missing from the
// file keep their Default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Example != "" {
		c.Example = o.Example
	}
	if o.Bits > 0 {
		c.Bits = o.Bits
	}
	if len(o.Arch) > 0 {
		c.Arch = append([]int(nil), o.Arch...)
	}
	if o.Activation != "" {
		c.Activation = o.Activation
	}
	if o.Method != "" {
		c.Method = o.Method
	}
	if o.Optimizer != "" {
		c.Optimizer = o.Optimizer
	}
	if o.Rate > 0 {
		c.Rate = float32(o.Rate)
	}
	if o.MaxSteps > 0 {
		c.MaxSteps = o.MaxSteps
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.TargetRank > 0 {
		c.TargetRank = o.TargetRank
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Seeds > 0 {
		c.Seeds = o.Seeds
	}
	if o.Packed {
		c.Packed = true
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Example == "" {
		return errors.New("example must be set")
	}
	if c.Example == "adder" && (c.Bits < 1 || c.Bits > dataset.MaxAdderBits) {
		return fmt.Errorf("bits must be in [1, %d] (got %d)", dataset.MaxAdderBits, c.Bits)
	}
	if len(c.Arch) > 0 {
		if err := nn.Arch(c.Arch).Validate(); err != nil {
			return fmt.Errorf("arch: %w", err)
		}
	}
	if _, err := nn.ActivationByName(c.Activation); err != nil {
		return err
	}
	if _, err := nn.ParseInit(c.Init); err != nil {
		return err
	}
	method, err := grad.ParseMethod(c.Method)
	if err != nil {
		return err
	}
	if method == grad.MethodFiniteDiff && !(c.Epsilon > 0) {
		return fmt.Errorf("epsilon must be > 0 for finite differences (got %g)", c.Epsilon)
	}
	if _, err := optim.ParseKind(c.Optimizer); err != nil {
		return err
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1) (got %g)", c.Momentum)
	}
	if !(c.Rate > 0) {
		return fmt.Errorf("rate must be > 0 (got %g)", c.Rate)
	}
	if c.Aggression < 0 {
		return fmt.Errorf("aggression must be >= 0 (got %g)", c.Aggression)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be > 0 (got %d)", c.MaxSteps)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.Seeds < 1 {
		return fmt.Errorf("seeds must be >= 1 (got %d)", c.Seeds)
	}
	if c.TargetRank < 1 || c.TargetRank > trainer.MaxRank {
		return fmt.Errorf("target_rank must be in [1, %d] (got %d)", trainer.MaxRank, c.TargetRank)
	}
	return nil
}

// Options converts the hyperparameters into trainer options.
func (c *Config) Options() (trainer.Options, error) {
	method, err := grad.ParseMethod(c.Method)
	if err != nil {
		return trainer.Options{}, err
	}
	return trainer.Options{
		MaxSteps:   c.MaxSteps,
		TargetRank: c.TargetRank,
		Rate:       c.Rate,
		BatchSize:  c.BatchSize,
		Aggression: c.Aggression,
		Method:     method,
		Epsilon:    c.Epsilon,
		Central:    c.Central,
	}, nil
}
