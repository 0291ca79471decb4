package dataset

import "log/slog"

// Option configures New and NewDatasetView, generalizing the
// closures-over-a-private-struct pattern the teacher uses for file and
// dataset creation flags into a single construction-time knob shared
// across this package.
type Option func(*options)

type options struct {
	logger *slog.Logger
	fixed  []Dim
}

// WithLogger sets the *slog.Logger propagated to every Variable
// inserted into the Dataset afterward.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFixed marks dims as fixed for NewDatasetView: they're erased
// from the joint iteration space and exposed inside Slab sub-views
// and Nested selectors instead (spec §4.I).
func WithFixed(dims ...Dim) Option {
	return func(o *options) { o.fixed = append(o.fixed, dims...) }
}

func resolveOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
