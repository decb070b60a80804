package curve

import (
	"log/slog"

	"github.com/golang/geo/r3"

	"github.com/stepgeom/curve/tolerance"
)

// Option configures a new approximation.
type Option func(*config)

type config struct {
	closed     bool
	start, end []float64
	tol        tolerance.Set
	logger     *slog.Logger
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tol.IsZero() {
		cfg.tol = tolerance.Default()
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}
	return cfg
}

// Closed makes the approximation periodic. The parameters must then carry
// one extra entry, the parameter at which the curve returns to the first
// point.
func Closed() Option {
	return func(c *config) { c.closed = true }
}

// WithEndTangents prescribes the derivatives at the start and end of an
// open curve. Without them they are estimated from the first and last three
// samples.
func WithEndTangents(t0, t1 Vec2) Option {
	return func(c *config) {
		c.start, c.end = t0.coords(), t1.coords()
	}
}

// WithEndTangents3D is the 3D counterpart of [WithEndTangents].
func WithEndTangents3D(t0, t1 r3.Vector) Option {
	return func(c *config) {
		c.start, c.end = vectorCoords(t0), vectorCoords(t1)
	}
}

// WithTolerance sets the tolerances used for validation and numerics.
// It panics on the zero Set.
func WithTolerance(set tolerance.Set) Option {
	if set.IsZero() {
		panic("curve: WithTolerance(zero Set)")
	}
	return func(c *config) { c.tol = set }
}

// WithLogger sets the logger for this approximation, overriding
// [SetLogger]. A nil logger keeps the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}
