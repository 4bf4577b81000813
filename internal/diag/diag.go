// Package diag wraps the structured logger shared by the CLI and the
// service layer. The lexer and parser packages stay silent; logging
// belongs to the driver, not the core.
package diag

import "go.uber.org/zap"

// New builds a development-friendly logger when verbose is true, and a
// quieter production logger otherwise.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Noop returns a logger that discards everything, for tests and library
// callers that don't want log output.
func Noop() *zap.Logger {
	return zap.NewNop()
}
