//go:build !linux && !windows

package autostart

import "go.uber.org/zap"

// New returns the Unsupported backend.
func New(opts Options, logger *zap.Logger) Backend {
	logger.Debug("No startup backend for this platform")
	return Unsupported{}
}
