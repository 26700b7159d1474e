// Package main provides the mlp training CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/born-ml/mlp/internal/config"
	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/trainer"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage(os.Stdout)
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("mlp %s\n", version)
	case "train":
		if err := train(os.Args[2:]); err != nil {
			slog.Error("training failed", "err", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "mlp - feed-forward network trainer")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  train      Train a network on a built-in example (mlp train -h for flags)")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Examples: adder, twice, %s\n", strings.Join(dataset.GateNames(), ", "))
}

func train(args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	example := fs.String("example", "", "Example to train: adder, twice or a gate")
	bits := fs.Int("bits", 0, "Operand width for the adder")
	arch := fs.String("arch", "", "Layer widths, e.g. 2,4,1")
	activation := fs.String("activation", "", "sigmoid, relu, tanh or identity")
	method := fs.String("method", "", "Gradient method: backprop or finite-diff")
	optimizer := fs.String("optimizer", "", "Optimizer: sgd or adam")
	rate := fs.Float64("rate", 0, "Learning rate")
	steps := fs.Int("steps", 0, "Maximum number of training steps")
	batchSize := fs.Int("batch-size", 0, "Steps per batch")
	rank := fs.Int("rank", 0, "Target cost rank")
	firstSeed := fs.Int64("seed", 0, "PRNG seed")
	seedCount := fs.Int("seeds", 0, "Train this many consecutive seeds concurrently and keep the best")
	packed := fs.Bool("packed", false, "Pack all matrices into one arena")
	verbose := fs.Bool("v", false, "Log every batch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	widths, err := parseArch(*arch)
	if err != nil {
		return err
	}
	cfg.ApplyOverrides(config.Overrides{
		Example:    *example,
		Bits:       *bits,
		Arch:       widths,
		Activation: *activation,
		Method:     *method,
		Optimizer:  *optimizer,
		Rate:       *rate,
		MaxSteps:   *steps,
		BatchSize:  *batchSize,
		TargetRank: *rank,
		Seed:       *firstSeed,
		Seeds:      *seedCount,
		Packed:     *packed,
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ex, err := dataset.Lookup(cfg.Example, cfg.Bits)
	if err != nil {
		return err
	}
	kind, err := optim.ParseKind(cfg.Optimizer)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	// every run gets its own network and optimizer state
	job := func(seed int64) (*nn.Network, nn.TrainingSet, trainer.Config, error) {
		net, err := build(cfg, ex, seed)
		if err != nil {
			return nil, nn.TrainingSet{}, trainer.Config{}, err
		}
		opt, err := optim.New(kind, cfg.Rate, cfg.Momentum)
		if err != nil {
			return nil, nn.TrainingSet{}, trainer.Config{}, err
		}
		return net, ex.Set, trainer.Config{
			Options:   opts,
			Optimizer: opt,
			Logger:    logger.With("seed", seed),
		}, nil
	}

	seeds := make([]int64, cfg.Seeds)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("training", "example", ex.Name, "rows", ex.Set.Rows(), "seeds", len(seeds))
	outcomes := trainer.Sweep(ctx, seeds, job, parallel.DefaultConfig())
	best, ok := trainer.Best(outcomes)
	if !ok {
		return outcomes[0].Err
	}
	net := best.Net
	logger.Info("network", "seed", best.Seed, "state", best.Result.State.String(),
		"arch", []int(net.Arch), "activation", net.Activation.Name(),
		"params", net.ParamCount(), "packed", net.IsPacked())

	report, err := dataset.Confirm(net, ex.Set)
	if err != nil {
		return err
	}
	if err := report.WriteTable(os.Stdout, ex.Format); err != nil {
		return err
	}

	if ctx.Err() != nil {
		return errors.New("interrupted")
	}
	if !report.Pass() {
		logger.Warn("failed to converge", "accuracy", report.Accuracy())
	}
	return nil
}

// build allocates and seeds the network for ex, letting cfg override the
// example's architecture and activation.
func build(cfg *config.Config, ex dataset.Example, seed int64) (*nn.Network, error) {
	arch := ex.Arch
	if len(cfg.Arch) > 0 {
		arch = nn.Arch(cfg.Arch)
	}
	actName := cfg.Activation
	if actName == "" {
		actName = ex.Activation
	}
	act, err := nn.ActivationByName(actName)
	if err != nil {
		return nil, err
	}
	scheme, err := nn.ParseInit(cfg.Init)
	if err != nil {
		return nil, err
	}

	net, err := nn.New(arch, nn.Config{Packed: cfg.Packed, Activation: act})
	if err != nil {
		return nil, err
	}
	if err := net.Initialize(scheme, rand.New(rand.NewSource(seed))); err != nil {
		return nil, err
	}
	return net, nil
}

func parseArch(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	widths := make([]int, len(parts))
	for i, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("arch %q: %w", s, err)
		}
		widths[i] = w
	}
	return widths, nil
}
