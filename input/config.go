// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"go.uber.org/zap"

	"ctrlio.org/io/event"
)

// Config controls an Input.
type Config struct {
	// Logger receives listener lifecycle messages at debug level and
	// subscriber failures at error level.
	Logger *zap.Logger
	// OnError handles subscriber failures. The default logs them to
	// Logger and continues with the next subscriber.
	OnError event.ErrorHandler
	// Viewport supplies the scroll offset subtracted from page
	// coordinates.
	Viewport Viewport
}

// DefaultConfig returns a Config with a no-op logger and an
// unscrolled viewport.
func DefaultConfig() Config {
	return Config{
		Logger:   zap.NewNop(),
		Viewport: NoScroll,
	}
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.OnError == nil {
		c.OnError = event.LogErrors(c.Logger)
	}
	if c.Viewport == nil {
		c.Viewport = NoScroll
	}
	return c
}
