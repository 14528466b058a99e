// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

type rootLogger struct{ Logger }

var root atomic.Value

func init() {
	root.Store(rootLogger{&logger{slog.New(DiscardHandler())}})
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(rootLogger{l})
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// current returns the root logger
func current() Logger {
	return root.Load().(rootLogger).Logger
}

// WithContext returns a logger carrying the given context pairs.
// It writes through the root logger current at the time of each call,
// so package loggers declared at init follow a later SetDefault.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

type contextLogger struct {
	ctx []any
}

func (c *contextLogger) resolve() Logger {
	return current().With(c.ctx...)
}

func (c *contextLogger) With(ctx ...any) Logger {
	return &contextLogger{ctx: append(append([]any{}, c.ctx...), ctx...)}
}

func (c *contextLogger) Log(level slog.Level, msg string, ctx ...any) {
	c.resolve().Log(level, msg, ctx...)
}

func (c *contextLogger) Trace(msg string, ctx ...any) { c.resolve().Trace(msg, ctx...) }

func (c *contextLogger) Debug(msg string, ctx ...any) { c.resolve().Debug(msg, ctx...) }

func (c *contextLogger) Info(msg string, ctx ...any) { c.resolve().Info(msg, ctx...) }

func (c *contextLogger) Warn(msg string, ctx ...any) { c.resolve().Warn(msg, ctx...) }

func (c *contextLogger) Error(msg string, ctx ...any) { c.resolve().Error(msg, ctx...) }

func (c *contextLogger) Crit(msg string, ctx ...any) {
	c.resolve().Log(LevelCrit, msg, ctx...)
	os.Exit(1)
}

func (c *contextLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return current().Enabled(ctx, level)
}

func (c *contextLogger) Handler() slog.Handler {
	return c.resolve().Handler()
}

// Trace is a convenient alias for the root logger Trace
func Trace(msg string, ctx ...any) {
	current().Trace(msg, ctx...)
}

// Debug is a convenient alias for the root logger Debug
func Debug(msg string, ctx ...any) {
	current().Debug(msg, ctx...)
}

// Info is a convenient alias for the root logger Info
func Info(msg string, ctx ...any) {
	current().Info(msg, ctx...)
}

// Warn is a convenient alias for the root logger Warn
func Warn(msg string, ctx ...any) {
	current().Warn(msg, ctx...)
}

// Error is a convenient alias for the root logger Error
func Error(msg string, ctx ...any) {
	current().Error(msg, ctx...)
}

// Crit is a convenient alias for the root logger Crit
func Crit(msg string, ctx ...any) {
	current().Crit(msg, ctx...)
}
