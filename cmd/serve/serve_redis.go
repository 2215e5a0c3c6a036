package serve

import (
	"context"
	"flag"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/jjo/stocks/cache"
	"github.com/jjo/stocks/cmd/env"
)

type serveRedisCfg struct {
	rootCfg *serveCfg
	fs      *flag.FlagSet
}

// newServeRedisCmd creates the serve redis command
func newServeRedisCmd(rootCfg *serveCfg) *ffcli.Command {
	cfg := &serveRedisCfg{
		rootCfg: rootCfg,
	}

	fs := flag.NewFlagSet("redis", flag.ExitOnError)
	cfg.fs = fs
	cfg.rootCfg.registerFlags(fs)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "redis",
		ShortUsage: "serve redis [flags]",
		LongHelp:   "Serves the CCL table, using a Redis cache shared between instances",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *serveRedisCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.rootCfg.config.Cache.RedisURL,
		"redis-url",
		"",
		"the Redis URL (redis://<user>:<password>@<host>:<port>/<db>)",
	)
}

func (c *serveRedisCfg) exec(ctx context.Context, _ []string) error {
	return c.rootCfg.run(ctx, cache.BackendRedis, c.fs)
}
