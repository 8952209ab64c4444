// Package logging constructs the process-wide logger.
package logging

import "go.uber.org/zap"

// New returns a production logger, or a human-readable development logger
// when verbose is set. Construction failures fall back to a no-op logger
// rather than aborting the process.
func New(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
