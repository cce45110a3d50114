package parser

import (
	"log/slog"
	"os"
)

// Option configures a Parser at construction time, mirroring package
// lexer's functional-options shape (itself grounded on
// opal-lang/opal/runtime/parser/options.go).
type Option func(*Parser)

// WithLogger overrides the parser's debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

func defaultLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("KC_DEBUG_PARSER") != "" {
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
