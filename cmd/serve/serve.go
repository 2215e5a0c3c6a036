package serve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/jjo/stocks/cache"
	"github.com/jjo/stocks/cmd/env"
	"github.com/jjo/stocks/cmd/pipeline"
	"github.com/jjo/stocks/refresh"
	"github.com/jjo/stocks/server"
	"github.com/jjo/stocks/server/config"
)

// serveCfg wraps the serve configuration
type serveCfg struct {
	config *config.Config

	configPath string
}

// NewServeCmd creates the serve subcommand
func NewServeCmd() *ffcli.Command {
	cfg := &serveCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg.registerFlags(fs)

	cmd := &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve <subcommand> [flags]",
		LongHelp:   "Serves the CEDEAR CCL table over HTTP",
		FlagSet:    fs,
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}

	cmd.Subcommands = []*ffcli.Command{
		newServeMemoryCmd(cfg),
		newServeRedisCmd(cfg),
	}

	return cmd
}

func (c *serveCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.config.ListenAddress,
		"listen",
		config.DefaultListenAddress,
		"the IP:PORT URL for the server",
	)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the server TOML configuration, if any",
	)

	fs.IntVar(
		&c.config.Refresh.MinSeconds,
		"refresh-min",
		config.DefaultRefreshMinSeconds,
		"the minimum background refresh period, in seconds",
	)

	fs.IntVar(
		&c.config.Refresh.MaxSeconds,
		"refresh-max",
		config.DefaultRefreshMaxSeconds,
		"the maximum background refresh period, in seconds",
	)

	pipeline.RegisterFlags(fs, &c.config.Pipeline)
}

// serveOnlyFlags are not part of the configuration file
var serveOnlyFlags = []string{"config"}

// run serves the CCL service on top of the given cache backend,
// with the background refresher keeping it warm [BLOCKING]
func (c *serveCfg) run(ctx context.Context, backend cache.Backend, fs *flag.FlagSet) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Read the server configuration, if any
	if c.configPath != "" {
		serverCfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read server config, %w", err)
		}

		if overridden := pipeline.OverriddenFlags(fs, serveOnlyFlags...); len(overridden) > 0 {
			logger.Warn(
				"configuration file overrides flags",
				"config", c.configPath,
				"flags", overridden,
			)
		}

		c.config = serverCfg
	}

	c.config.Cache.Backend = backend

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
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

	// Create the background refresher
	refresher := refresh.New(refresh.WithLogger(logger))

	job := refresh.NewPipelineJob(
		p,
		time.Duration(c.config.Refresh.MinSeconds)*time.Second,
		time.Duration(c.config.Refresh.MaxSeconds)*time.Second,
		refresh.WithJobLogger(logger),
	)

	if err = refresher.Register(job); err != nil {
		return fmt.Errorf("unable to register refresh job, %w", err)
	}

	// Create the server instance
	s, err := server.New(
		p,
		server.WithLogger(logger),
		server.WithConfig(c.config),
		server.WithMemo(cache.NewMemo(store, logger)),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)

	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	// Start the HTTP server
	group.Go(func() error {
		return s.Serve(gCtx)
	})

	// Start the refresh service
	group.Go(func() error {
		return refresher.Start(gCtx)
	})

	return group.Wait()
}
