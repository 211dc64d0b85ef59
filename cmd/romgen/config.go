package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/wippyai/romgen/errors"
	"github.com/wippyai/romgen/schematic"
)

// Config holds romgen command configuration. Environment variables supply
// defaults; flags override them.
type Config struct {
	OnBlock     string `env:"ROMGEN_ON_BLOCK"   envDefault:"minecraft:redstone_block"`
	OffBlock    string `env:"ROMGEN_OFF_BLOCK"  envDefault:"minecraft:blue_ice"`
	Version     string `env:"ROMGEN_VERSION"    envDefault:"JE_1_19"`
	LogLevel    string `env:"ROMGEN_LOG_LEVEL"  envDefault:"warn"`
	Verify      bool   `env:"ROMGEN_VERIFY"`
	Interactive bool
	Input       string
	Output      string
}

// ParseConfig parses env and flags into a Config. Exactly two positional
// arguments, the input and output paths, are required.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.OnBlock, "on", cfg.OnBlock, "block for 1 bits")
	fs.StringVar(&cfg.OffBlock, "off", cfg.OffBlock, "block for 0 bits")
	fs.StringVar(&cfg.Version, "version", cfg.Version, "schematic version tag ("+strings.Join(schematic.Versions(), ", ")+")")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "read the schematic back and compare with the input")
	fs.BoolVar(&cfg.Interactive, "i", false, "preview the layout before writing")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if fs.NArg() != 2 {
		return Config{}, errors.InvalidArguments(fmt.Sprintf("expected 2 arguments, got %d", fs.NArg()))
	}
	cfg.Input = fs.Arg(0)
	cfg.Output = fs.Arg(1)
	return cfg, nil
}
