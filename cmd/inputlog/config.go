// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ctrlio.org/input"
)

type config struct {
	Device   string   `toml:"device"`
	Kinds    []string `toml:"kinds"`
	LogLevel string   `toml:"log_level"`
	Grab     bool     `toml:"grab"`
	// OriginX and OriginY place the panel on the page.
	OriginX float32 `toml:"origin_x"`
	OriginY float32 `toml:"origin_y"`
}

const defaultDevice = "/dev/input/event0"

func defaultConfig() config {
	return config{
		Device:   defaultDevice,
		Kinds:    []string{"mousedown", "mouseup", "touchstart", "touchend", "resize"},
		LogLevel: "info",
	}
}

// loadConfig reads the TOML file at path over the defaults. An empty
// path yields the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return config{}, fmt.Errorf("%s: unknown key %q", path, undec[0].String())
	}
	return cfg, nil
}

func (c config) kinds() ([]input.Kind, error) {
	if len(c.Kinds) == 0 {
		return nil, errors.New("no event kinds configured")
	}
	ks := make([]input.Kind, 0, len(c.Kinds))
	for _, name := range c.Kinds {
		k, ok := input.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown event kind %q", name)
		}
		ks = append(ks, k)
	}
	return ks, nil
}

func (c config) logger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
