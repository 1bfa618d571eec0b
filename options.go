package crt

import (
	"errors"
	"fmt"

	"github.com/joeycumines/go-crt/allocator"
)

type (
	// Option configures an APIHandle, see New.
	Option interface {
		applyOption(*apiOptions) error
	}

	optionImpl struct {
		applyOptionFunc func(*apiOptions) error
	}

	apiOptions struct {
		alloc    allocator.Allocator
		behavior ShutdownBehavior
	}
)

func (x *optionImpl) applyOption(opts *apiOptions) error {
	return x.applyOptionFunc(opts)
}

// WithAllocator sets the allocator installed as the process allocator, and
// used by every library. Defaults to allocator.Default.
func WithAllocator(alloc allocator.Allocator) Option {
	return &optionImpl{func(opts *apiOptions) error {
		if alloc == nil {
			return errors.New(`crt: nil allocator`)
		}
		opts.alloc = alloc
		return nil
	}}
}

// WithShutdownBehavior sets the initial ShutdownBehavior, which defaults
// to ShutdownBlocking.
func WithShutdownBehavior(behavior ShutdownBehavior) Option {
	return &optionImpl{func(opts *apiOptions) error {
		if behavior != ShutdownBlocking && behavior != ShutdownNotBlocking {
			return fmt.Errorf(`crt: invalid shutdown behavior: %d`, behavior)
		}
		opts.behavior = behavior
		return nil
	}}
}

func resolveOptions(opts []Option) (*apiOptions, error) {
	cfg := &apiOptions{
		alloc:    allocator.Default(),
		behavior: ShutdownBlocking,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyOption(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
