package csp

import "github.com/arloliu/go-csp/buffer"

// config holds the construction parameters shared by all channel kinds.
type config[T any] struct {
	// buf is the buffering policy; nil means zero-buffered rendezvous.
	buf buffer.Policy[T]

	// immunity is the poison strength a channel shrugs off. Poison with
	// strength <= immunity has no effect. Defaults to -1, so even
	// strength 0 poisons the channel.
	immunity int
}

// Option customizes a channel at construction time.
type Option[T any] func(*config[T])

func newConfig[T any](opts ...Option[T]) *config[T] {
	cfg := &config[T]{immunity: -1}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithBuffer inserts the given buffering policy between writer and reader.
// Without it the channel is zero-buffered and fully synchronizing.
//
// The policy instance becomes exclusively owned by the channel and must
// not be shared with another channel.
func WithBuffer[T any](p buffer.Policy[T]) Option[T] {
	return func(cfg *config[T]) {
		cfg.buf = p
	}
}

// WithImmunity sets the poison strength the channel ignores. Poison with
// strength <= level is a no-op on this channel. A large level effectively
// makes the channel unpoisonable. By default a channel has no immunity.
func WithImmunity[T any](level int) Option[T] {
	return func(cfg *config[T]) {
		cfg.immunity = level
	}
}
