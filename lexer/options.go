package lexer

import (
	"log/slog"
	"os"
)

// Option configures a Lexer at construction time. Grounded on
// opal-lang/opal/runtime/parser/options.go's functional-options shape.
type Option func(*Lexer)

// WithLogger overrides the lexer's debug logger. By default the lexer
// builds a slog.Logger writing to os.Stderr at LevelInfo (effectively
// silent for Debug-level trace lines), matching
// opal-lang/opal/runtime/lexer's New() — including the env-var gate that
// promotes the level to Debug, here KC_DEBUG_LEXER instead of opal's
// DEVCMD_DEBUG_LEXER.
func WithLogger(l *slog.Logger) Option {
	return func(lx *Lexer) { lx.logger = l }
}

// WithMaxDiagnostics caps the number of diagnostics the lexer will record
// before silently dropping further ones, guarding against pathological
// input generating unbounded diagnostic output. 0 (the default) means
// unbounded.
func WithMaxDiagnostics(n int) Option {
	return func(lx *Lexer) { lx.maxDiagnostics = n }
}

func defaultLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("KC_DEBUG_LEXER") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
