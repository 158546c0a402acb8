package service

import (
	"log/slog"
	"time"

	"github.com/mmynk/fairshare/internal/metrics"
	"github.com/mmynk/fairshare/internal/money"
)

// options are shared by SplitService and AnalyticsService.
type options struct {
	logger    *slog.Logger
	formatter *money.Formatter
	metrics   *metrics.Metrics
	location  *time.Location
	now       func() time.Time
}

// Option configures a service.
type Option func(*options)

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFormatter sets how amounts are rendered in summaries.
func WithFormatter(f *money.Formatter) Option {
	return func(o *options) { o.formatter = f }
}

// WithMetrics records calculator metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLocation sets the zone naive dates are read in and days are bucketed by.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.location = loc }
}

// WithClock overrides the current time.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func newOptions(opts []Option) options {
	o := options{
		logger:    slog.Default(),
		formatter: money.NewFormatter(money.DefaultLanguage, money.DefaultSymbol),
		location:  time.UTC,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
