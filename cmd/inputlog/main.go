// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux

// Command inputlog logs the normalized pointer and resize events of
// a Linux input device.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ctrlio.org/app/evdev"
	"ctrlio.org/f32"
	"ctrlio.org/input"
	"ctrlio.org/io/pointer"
	"ctrlio.org/io/system"
)

var (
	configPath = flag.String("config", "", "TOML configuration file")
	devicePath = flag.String("device", "", "input device node (overrides the configuration)")
	logLevel   = flag.String("level", "", "log level (overrides the configuration)")
	grab       = flag.Bool("grab", false, "grab the device exclusively")
)

func main() {
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "inputlog: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *devicePath != "" {
		cfg.Device = *devicePath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	cfg.Grab = cfg.Grab || *grab

	kinds, err := cfg.kinds()
	if err != nil {
		return err
	}
	log, err := cfg.logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	dev, err := evdev.Open(cfg.Device, evdev.Options{
		Grab:   cfg.Grab,
		Origin: f32.Pt(cfg.OriginX, cfg.OriginY),
		Logger: log,
	})
	if err != nil {
		return err
	}
	defer dev.Close()

	icfg := input.DefaultConfig()
	icfg.Logger = log
	in := input.New(dev, evdev.NewObserver(), icfg)
	defer in.Dispose()
	for _, k := range kinds {
		subscribe(in, k, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := dev.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func subscribe(in *input.Input, k input.Kind, log *zap.Logger) {
	if k == input.Resize {
		in.OnResize(func(e system.ResizeEvent) error {
			log.Info("resize", zap.Stringer("size", e.Size()))
			return nil
		})
		return
	}
	in.OnPointer(k, func(e pointer.Event) error {
		fields := []zap.Field{zap.Stringer("kind", k)}
		for _, id := range e.IDs() {
			fields = append(fields, zap.Stringer(fmt.Sprintf("pointer.%d", id), e.Pointers[id].Position))
		}
		log.Info("pointer", fields...)
		return nil
	})
}
