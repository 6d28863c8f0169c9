package processor

import "log/slog"

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers sets the worker pool size. Values below 1 are rejected at
// construction time: the default (host core count) is used instead and
// a warning is logged.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		p.workers = n
	}
}

// WithLogger sets the structured logger used for match notifications
// and diagnostics. nil keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}
