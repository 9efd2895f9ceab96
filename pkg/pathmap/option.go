package pathmap

import "log/slog"

type Option func(*PathMap) *PathMap

// DefaultOptions returns a PathMap with "/" as separator and the default slog logger.
func DefaultOptions() *PathMap {
	return &PathMap{
		separator: "/",
		logger:    slog.Default(),
	}
}

// WithSeparator sets the path separator used to split paths into segments.
// An empty separator is ignored.
func WithSeparator(separator string) Option {
	return func(p *PathMap) *PathMap {
		if separator != "" {
			p.separator = separator
		}
		return p
	}
}

// WithLogger sets the logger used to report insertions.
func WithLogger(logger *slog.Logger) Option {
	return func(p *PathMap) *PathMap {
		if logger != nil {
			p.logger = logger
		}
		return p
	}
}
