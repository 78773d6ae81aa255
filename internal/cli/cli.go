// Package cli holds the flag and logging setup shared by the viewer
// binaries.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"phong-engine/config"
	"phong-engine/lighting"
)

// Options are the parsed command-line flags.
type Options struct {
	ConfigPath string
	Variant    string
	LogLevel   string
	Width      int
	Height     int
	DumpConfig bool
}

// Parse reads flags from args (without the program name).
func Parse(name string, args []string) (Options, error) {
	var opts Options
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "TOML configuration file")
	fs.StringVarP(&opts.Variant, "variant", "v", "", "lighting variant: ambient, diffuse or phong")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.IntVar(&opts.Width, "width", 0, "window width, overrides the config file")
	fs.IntVar(&opts.Height, "height", 0, "window height, overrides the config file")
	fs.BoolVar(&opts.DumpConfig, "dump-config", false, "print the effective configuration and exit")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

// Config loads the configuration file, if any, and applies flag overrides.
func (o Options) Config() (*config.Config, error) {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.Variant != "" {
		v, err := lighting.ParseVariant(o.Variant)
		if err != nil {
			return nil, err
		}
		cfg.Lighting.Variant = v.String()
	}
	if o.Width > 0 {
		cfg.Window.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Window.Height = o.Height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger returns a text logger on w at the requested level.
func (o Options) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
