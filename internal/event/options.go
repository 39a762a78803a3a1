package event

import (
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a Bus.
type Option func(*busConfig)

type busConfig struct {
	logger *zap.Logger
	clock  clock.Clock
	newID  func() string
}

func defaultBusConfig() busConfig {
	return busConfig{
		logger: zap.NewNop(),
		clock:  clock.New(),
		newID:  uuid.NewString,
	}
}

// WithLogger sets the logger used for handler failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *busConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock used for event timestamps.
func WithClock(clk clock.Clock) Option {
	return func(c *busConfig) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithIDGenerator sets the generator for subscription and event IDs.
func WithIDGenerator(fn func() string) Option {
	return func(c *busConfig) {
		if fn != nil {
			c.newID = fn
		}
	}
}
