package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	dslog "github.com/grafana/dskit/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grafana/jsondoc/pkg/docwriter"
	"github.com/grafana/jsondoc/pkg/jsondoc"
	"github.com/grafana/jsondoc/pkg/jsondoc/keymap"
	"github.com/grafana/jsondoc/pkg/util/flagext"
)

type config struct {
	KeyMapFiles flagext.Files
	LogLevel    dslog.Level
	Writer      docwriter.Config
}

func (c *config) RegisterFlags(f *flag.FlagSet) {
	f.Var(&c.KeyMapFiles, "keymap.file", "YAML file mapping integer keys to their candidate names. May be repeated; later files override earlier ones.")
	c.LogLevel.RegisterFlags(f)
	c.Writer.RegisterFlags(f)
}

func (c *config) Validate() error {
	if len(c.KeyMapFiles) == 0 {
		return errors.New("-keymap.file is required")
	}
	return c.Writer.Validate()
}

func newLogger(logLevel dslog.Level) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, logLevel.Option)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// inspect prints the resolved name of every mapped key to out, then writes
// a sample document holding one member per key.
func inspect(out io.Writer, km keymap.KeyMap, cfg docwriter.Config, logger log.Logger) error {
	variant := cfg.Encoder.Variant
	tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tEXACT")
	sample := jsondoc.New(km)
	for key, names := range km {
		if len(names) == 0 {
			continue
		}
		name, exact := km.Resolve(key, variant)
		fmt.Fprintf(tw, "%d\t%s\t%t\n", key, name, exact)
		sample.AddString(key, name)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "printing key map")
	}

	w := docwriter.New(cfg, out, logger, prometheus.NewRegistry())
	return errors.Wrap(w.Write(sample), "writing sample document")
}

func main() {
	var cfg config
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger := newLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		level.Error(logger).Log("msg", "validating config", "err", err)
		os.Exit(1)
	}

	km, err := keymap.LoadFiles(cfg.KeyMapFiles...)
	if err != nil {
		level.Error(logger).Log("msg", "failed to load key map", "err", err)
		os.Exit(1)
	}
	level.Debug(logger).Log("msg", "loaded key map", "keys", len(km), "variants", km.Variants())

	if err := inspect(os.Stdout, km, cfg.Writer, logger); err != nil {
		level.Error(logger).Log("msg", "failed to inspect key map", "err", err)
		os.Exit(1)
	}
}
