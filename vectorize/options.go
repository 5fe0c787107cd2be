package vectorize

import "github.com/cwbudde/algo-vecmath/cpu"

// Option configures an Engine.
type Option func(*config)

type config struct {
	registry     *Registry
	features     *cpu.Features
	fallbackOnly bool
}

func defaultConfig() config {
	return config{registry: Global}
}

// WithRegistry resolves specializations from r instead of Global.
func WithRegistry(r *Registry) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.registry = r
		}
	}
}

// WithFeatures fixes the CPU features used to select among SIMD-gated
// specializations. By default cpu.DetectFeatures is consulted per call.
func WithFeatures(f cpu.Features) Option {
	return func(cfg *config) {
		features := f
		cfg.features = &features
	}
}

// WithFallbackOnly disables specialization lookup; every call runs the
// elementwise loop.
func WithFallbackOnly() Option {
	return func(cfg *config) {
		cfg.fallbackOnly = true
	}
}

func applyOptions(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
