package run

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/jjo/stocks/cache"
	"github.com/jjo/stocks/cmd/env"
	"github.com/jjo/stocks/cmd/pipeline"
	"github.com/jjo/stocks/render"
	"github.com/jjo/stocks/server/config"
	"github.com/jjo/stocks/types"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatHTML = "html"
)

var errInvalidFormat = errors.New("invalid output format")

// runOnlyFlags are not part of the configuration file
var runOnlyFlags = []string{"config", "format", "verbose"}

// runCfg wraps the run configuration
type runCfg struct {
	config *config.Config
	fs     *flag.FlagSet

	configPath string
	format     string
	cacheKind  string
	verbose    bool
}

// NewRunCmd creates the one-shot run command
func NewRunCmd() *ffcli.Command {
	cfg := &runCfg{
		config: config.DefaultConfig(),
		fs:     flag.NewFlagSet("run", flag.ExitOnError),
	}

	cfg.registerFlags(cfg.fs)

	return &ffcli.Command{
		Name:       "run",
		ShortUsage: "run [flags]",
		LongHelp:   "Computes the CEDEAR CCL table once, and prints it",
		FlagSet:    cfg.fs,
		Exec: func(ctx context.Context, _ []string) error {
			return cfg.exec(ctx, os.Stdout)
		},
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *runCfg) registerFlags(fs *flag.FlagSet) {
	pipeline.RegisterFlags(fs, &c.config.Pipeline)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the TOML configuration, if any",
	)

	fs.StringVar(
		&c.format,
		"format",
		formatText,
		"the output format (text, json, html)",
	)

	fs.StringVar(
		&c.cacheKind,
		"cache",
		cache.BackendMemory.String(),
		"the cache backend (memory, redis)",
	)

	fs.StringVar(
		&c.config.Cache.RedisURL,
		"redis-url",
		"",
		"the Redis URL, for the redis cache backend",
	)

	fs.BoolVar(
		&c.verbose,
		"verbose",
		false,
		"log the pipeline progress to stderr",
	)
}

// exec executes the one-shot run command
func (c *runCfg) exec(ctx context.Context, out io.Writer) error {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Read the configuration, if any
	if c.configPath != "" {
		fileCfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read config, %w", err)
		}

		if overridden := pipeline.OverriddenFlags(c.fs, runOnlyFlags...); len(overridden) > 0 {
			logger.Warn(
				"configuration file overrides flags",
				"config", c.configPath,
				"flags", overridden,
			)
		}

		c.config = fileCfg
	} else {
		c.config.Cache.Backend = cache.Backend(c.cacheKind)
	}

	writeTable, err := writerFor(c.format)
	if err != nil {
		return err
	}

	// Load .env, optional for one-shot runs
	if err := godotenv.Load(); err != nil {
		logger.Debug("unable to load .env file")
	}

	store, closeFn, err := pipeline.NewCache(ctx, &c.config.Cache, logger)
	if err != nil {
		return err
	}

	defer closeFn()

	p, err := pipeline.New(c.config.Pipeline, store, logger)
	if err != nil {
		return err
	}

	table, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("unable to compute CCL table, %w", err)
	}

	return writeTable(out, table)
}

// writerFor returns the table writer for the output format
func writerFor(format string) (func(io.Writer, *types.Table) error, error) {
	switch format {
	case formatText:
		return render.Text, nil
	case formatHTML:
		return render.HTML, nil
	case formatJSON:
		return func(w io.Writer, table *types.Table) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")

			return enc.Encode(render.Widget(table))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidFormat, format)
	}
}
