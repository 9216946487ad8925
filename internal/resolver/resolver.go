// Package resolver turns hostnames into IPv4 addresses by trying a fixed
// priority order of strategies: the system lookup first, then a
// platform-specific external tool. Failing to resolve is a routine outcome
// reported as ErrUnresolvable, never as a fault.
package resolver

import (
	"context"
	"errors"
	"log"
	"runtime"
	"time"
)

// ErrUnresolvable is returned when every strategy in the chain has failed.
var ErrUnresolvable = errors.New("hostname could not be resolved")

type Resolver interface {
	Resolve(ctx context.Context, hostname string) (string, error)
}

// Strategy is a single resolution mechanism tried by the chain.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, hostname string) (string, error)
}

// Chain tries each strategy in order and returns the first address found.
type Chain struct {
	strategies []Strategy
	timeout    time.Duration
	logger     *log.Logger
}

type Option func(*Chain)

// WithTimeout bounds each strategy attempt. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Chain) {
		c.timeout = d
	}
}

// WithStrategies replaces the default strategy order.
func WithStrategies(strategies ...Strategy) Option {
	return func(c *Chain) {
		c.strategies = strategies
	}
}

func New(logger *log.Logger, opts ...Option) *Chain {
	c := &Chain{
		strategies: []Strategy{newSystemStrategy(), platformToolStrategy()},
		timeout:    5 * time.Second,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the first address produced by the strategy order. A
// strategy failure falls through to the next strategy; there are no retries
// within a single call.
func (c *Chain) Resolve(ctx context.Context, hostname string) (string, error) {
	for _, s := range c.strategies {
		ip, err := c.attempt(ctx, s, hostname)
		if err != nil {
			c.logger.Printf("Resolver %s failed for %s: %v", s.Name(), hostname, err)
			continue
		}
		return ip, nil
	}
	return "", ErrUnresolvable
}

func (c *Chain) attempt(ctx context.Context, s Strategy, hostname string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return s.Resolve(ctx, hostname)
}

// platformToolStrategy picks the external resolution tool for the host OS:
// nslookup on Windows, dig everywhere else.
func platformToolStrategy() Strategy {
	if runtime.GOOS == "windows" {
		return newNslookupStrategy()
	}
	return newDigStrategy()
}
