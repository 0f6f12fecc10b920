package main

import (
	"fmt"

	picking "github.com/phanxgames/willow-picking"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	configFile  string
	policy      string
	parallelism int
	debug       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "pickprobe",
		Short: "Replay pointer scripts through the picking backend",
		Long: `pickprobe loads a scene file (windows, cameras, circles, segments and
per-frame pointer moves), runs one picking pass per frame and prints the
emitted hit batches as JSON lines.

Configuration is read from --config, then PICKING_* environment variables.
Flags given on the command line override both.

Examples:
  pickprobe run scene.yaml
  pickprobe run scene.yaml --policy required --parallelism 4
  pickprobe check scene.yaml`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (json, yaml or toml)")
	pf.StringVar(&opts.policy, "policy", "", "pickable policy override (ignored, required)")
	pf.IntVar(&opts.parallelism, "parallelism", 0, "pointers picked concurrently (0 keeps the configured value)")
	pf.BoolVar(&opts.debug, "debug", false, "log per-tick statistics")

	root.AddCommand(newRunCmd(opts), newCheckCmd(opts))
	return root
}

// config loads the configuration file and applies flag overrides.
func (o *rootOptions) config(cmd *cobra.Command) (picking.Config, error) {
	cfg, err := picking.LoadConfig(o.configFile)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("policy") {
		cfg.PickablePolicy = o.policy
	}
	if cmd.Flags().Changed("parallelism") {
		cfg.Parallelism = o.parallelism
	}
	if o.debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger builds a JSON zap logger writing to stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("bad log level: %w", err)
	}
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}
