package cantype

import (
	"log/slog"
	"os"
	"sync"

	"github.com/aretw0/cantype/internal/logging"
	"github.com/aretw0/cantype/pkg/kind"
	"github.com/aretw0/cantype/pkg/reflection"
)

// EnvVar names the environment variable read by Default. The value
// "production" turns on production mode.
const EnvVar = "CANTYPE_ENV"

// Factory builds, caches and composes type objects. For a given marker and
// policy a factory always returns the same TypeObject.
type Factory struct {
	reflector  reflection.Reflector
	primitives *kind.Registry
	logger     *slog.Logger
	hooks      Hooks
	production bool

	// policies maps a requested policy to the one actually built.
	policies   [policyCount]Policy
	bases      *cache[*typeObject]
	variants   [policyCount]*cache[*typeObject]
	composites [policyCount]*cache[*Composite]
}

// Option defines a functional option for configuring the Factory.
type Option func(*Factory)

// WithReflector replaces the reflection collaborator.
func WithReflector(r reflection.Reflector) Option {
	return func(f *Factory) {
		f.reflector = r
	}
}

// WithPrimitives replaces the primitive registry.
func WithPrimitives(r *kind.Registry) Option {
	return func(f *Factory) {
		f.primitives = r
	}
}

// WithLogger sets a custom structured logger for the factory.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(f *Factory) {
		f.hooks = hooks
	}
}

// WithProduction aliases check to convert and maybe to maybeConvert, so no
// type built by the factory ever fails a strict test.
func WithProduction(enabled bool) Option {
	return func(f *Factory) {
		f.production = enabled
	}
}

// NewFactory creates a factory with empty caches.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}

	if f.reflector == nil {
		f.reflector = reflection.NewRuntime()
	}
	if f.primitives == nil {
		f.primitives = kind.Default()
	}
	if f.logger == nil {
		f.logger = logging.NewNop()
	}

	f.bases = newCache[*typeObject]()
	for _, p := range Policies {
		f.policies[p] = p
		f.variants[p] = newCache[*typeObject]()
		f.composites[p] = newCache[*Composite]()
	}
	if f.production {
		f.policies[PolicyCheck] = PolicyConvert
		f.policies[PolicyMaybe] = PolicyMaybeConvert
	}

	return f
}

// Production reports whether strict policies are aliased to lenient ones.
func (f *Factory) Production() bool { return f.production }

// Reflector returns the reflection collaborator in use.
func (f *Factory) Reflector() reflection.Reflector { return f.reflector }

// Check returns the strict, non-nullable type of marker.
func (f *Factory) Check(marker any) TypeObject { return f.Variant(PolicyCheck, marker) }

// Convert returns the lenient, non-nullable type of marker.
func (f *Factory) Convert(marker any) TypeObject { return f.Variant(PolicyConvert, marker) }

// Maybe returns the strict type of marker that also accepts null and undefined.
func (f *Factory) Maybe(marker any) TypeObject { return f.Variant(PolicyMaybe, marker) }

// MaybeConvert returns the lenient type of marker that lets null and undefined through.
func (f *Factory) MaybeConvert(marker any) TypeObject { return f.Variant(PolicyMaybeConvert, marker) }

var defaultFactory = sync.OnceValue(func() *Factory {
	return NewFactory(WithProduction(os.Getenv(EnvVar) == "production"))
})

// Default returns the process-wide factory used by the package-level functions.
// Production mode is read from the environment the first time it is called.
func Default() *Factory {
	return defaultFactory()
}
