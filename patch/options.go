package patch

import (
	"github.com/erraggy/otpatch/internal/pathutil"
	"github.com/erraggy/otpatch/patcherrors"
)

// Option is a function that configures an Apply, Transform, Invert or
// Compose call.
type Option func(*config) error

// config holds configuration for one call.
type config struct {
	strict        bool
	rigid         bool
	partial       bool
	silent        bool
	atPath        string
	createMissing bool

	registry *Registry
	handlers []namedHandler
	logger   Logger
}

type namedHandler struct {
	name    string
	handler Handler
}

// WithStrict makes Apply stop at the first failing operation and return its
// error along with the original document.
func WithStrict(strict bool) Option {
	return func(cfg *config) error {
		cfg.strict = strict
		return nil
	}
}

// WithRigid makes Apply abandon the whole batch at the first failing
// operation and return the original document without an error.
// ApplyDetailed reports the abandonment in ApplyResult.Aborted.
func WithRigid(rigid bool) Option {
	return func(cfg *config) error {
		cfg.rigid = rigid
		return nil
	}
}

// WithPartial, together with WithRigid, makes Apply return the document as
// patched up to the failing operation instead of the original.
func WithPartial(partial bool) Option {
	return func(cfg *config) error {
		cfg.partial = partial
		return nil
	}
}

// WithSilent suppresses the warnings Apply logs for skipped operations.
func WithSilent(silent bool) Option {
	return func(cfg *config) error {
		cfg.silent = silent
		return nil
	}
}

// WithAtPath prefixes the path and from of every operation with path, so a
// patch written for a subdocument can be applied to its parent.
// Returns an error if path is not a pointer beginning with "/".
func WithAtPath(path string) Option {
	return func(cfg *config) error {
		if path == "" || pathutil.Check(path) != nil {
			return &patcherrors.ConfigError{Option: "atPath", Value: path, Message: `must begin with "/"`}
		}
		cfg.atPath = path
		return nil
	}
}

// WithCreateMissingObjects makes add, copy and move create missing
// intermediate objects instead of failing, and makes remove of a missing
// path a no-op.
func WithCreateMissingObjects(create bool) Option {
	return func(cfg *config) error {
		cfg.createMissing = create
		return nil
	}
}

// WithRegistry sets the registry operation kinds are resolved against.
// The default is the built-in registry.
func WithRegistry(r *Registry) Option {
	return func(cfg *config) error {
		if r == nil {
			return &patcherrors.ConfigError{Option: "registry", Message: "registry cannot be nil"}
		}
		cfg.registry = r
		return nil
	}
}

// WithHandler registers an extra operation kind for this call only. It is
// added to a copy of the configured registry, so the order relative to
// WithRegistry does not matter.
func WithHandler(name string, h Handler) Option {
	return func(cfg *config) error {
		if name == "" {
			return &patcherrors.ConfigError{Option: "handler", Message: "operation name cannot be empty"}
		}
		if h == nil {
			return &patcherrors.ConfigError{Option: "handler", Value: name, Message: "handler cannot be nil"}
		}
		cfg.handlers = append(cfg.handlers, namedHandler{name: name, handler: h})
		return nil
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// applyOptions applies all options and returns the configuration.
// defaultLogger is used when no WithLogger option is given.
func applyOptions(defaultLogger Logger, opts ...Option) (*config, error) {
	cfg := &config{
		registry: builtins,
		logger:   defaultLogger,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.partial && !cfg.rigid {
		return nil, &patcherrors.ConfigError{Option: "partial", Message: "requires WithRigid(true)"}
	}

	if len(cfg.handlers) > 0 {
		r := cfg.registry.Clone()
		for _, nh := range cfg.handlers {
			if err := r.Register(nh.name, nh.handler); err != nil {
				return nil, err
			}
		}
		cfg.registry = r
	}

	return cfg, nil
}
