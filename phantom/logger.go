package phantom

// Logger receives a diagnostic trace event and its key/value pairs.
// The facade's core packages (ntru, fpe, ring, ...) never log
// themselves - they are library code driven entirely by their
// caller, matching the teacher's layering (no logging framework
// appears below the scheme layer in lattigo). This package is the
// one place a caller-supplied sink is accepted, and only for the
// operations a caller of the facade actually triggers directly:
// key generation, signing, verification, identity extraction, and
// IBE encrypt/decrypt.
type Logger func(event string, kv ...any)

func noopLogger(string, ...any) {}

// Option configures the optional diagnostic sink on a facade
// constructor; the zero value (no options) is a silent, no-op
// logger, the same "optional injected sink, default silent" shape
// the teacher uses for its PRNG injection points.
type Option func(*options)

type options struct {
	logger Logger
}

// WithLogger installs a diagnostic sink. Passing a nil Logger is
// equivalent to omitting the option.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func resolveOptions(opts []Option) options {
	o := options{logger: noopLogger}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
