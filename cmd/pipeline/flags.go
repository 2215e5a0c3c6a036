package pipeline

import (
	"flag"
	"strings"

	"github.com/jjo/stocks/server/config"
)

// tickersFlag is a comma separated list of tickers
type tickersFlag struct {
	tickers *[]string
}

func (f tickersFlag) String() string {
	if f.tickers == nil {
		return ""
	}

	return strings.Join(*f.tickers, ",")
}

func (f tickersFlag) Set(value string) error {
	out := make([]string, 0)

	for _, t := range strings.Split(value, ",") {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}

	*f.tickers = out

	return nil
}

// RegisterFlags registers the pipeline flags onto the flag set
func RegisterFlags(fs *flag.FlagSet, cfg *config.PipelineConfig) {
	fs.Float64Var(
		&cfg.VolumeQuantile,
		"vol-quantile",
		config.DefaultVolumeQuantile,
		"the liquidity filter quantile, within [0, 1]",
	)

	fs.BoolVar(
		&cfg.NoFilter,
		"no-filter",
		false,
		"bypass the liquidity filter",
	)

	fs.Var(
		tickersFlag{tickers: &cfg.Tickers},
		"tickers",
		"comma separated local tickers to always include",
	)

	fs.IntVar(
		&cfg.ConcurrencyLimit,
		"concurrency",
		config.DefaultConcurrencyLimit,
		"the maximum number of in-flight upstream requests",
	)

	fs.Float64Var(
		&cfg.RequestsPerSecond,
		"rps",
		0,
		"the upstream request rate limit (0 is unlimited)",
	)
}

// OverriddenFlags returns the explicitly set flags (command line or env)
// a configuration file replaces. Flags named in keep are not reported
func OverriddenFlags(fs *flag.FlagSet, keep ...string) []string {
	skip := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		skip[k] = struct{}{}
	}

	out := make([]string, 0)

	fs.Visit(func(f *flag.Flag) {
		if _, ok := skip[f.Name]; !ok {
			out = append(out, f.Name)
		}
	})

	return out
}
