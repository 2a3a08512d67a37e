package chip8

import "github.com/retroenv/retrogolib/log"

// Option configures a System created by New.
type Option func(*System)

// WithRandom sets the source of the RND instruction.
func WithRandom(rng Random) Option {
	return func(sys *System) {
		sys.rng = rng
	}
}

// WithSeed seeds the default random source.
func WithSeed(seed int64) Option {
	return func(sys *System) {
		sys.rng = NewRandom(seed)
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(sys *System) {
		sys.logger = logger
	}
}

// WithTrace logs every executed instruction at debug level.
func WithTrace(trace bool) Option {
	return func(sys *System) {
		sys.trace = trace
	}
}
