// Package log configures logging for the analyzer binaries on top of
// Uber's Zap library. All application code logs through log/slog
// (slog.InfoContext etc.); this package wires slog's default handler to a
// Zap core so that dev builds get human-readable console output and prod
// builds get StackDriver-compatible JSON via zapdriver.
//
// Initialize() MUST be called by every binary before the first logging
// statement.
package log

import (
	golog "log"
	"log/slog"
	"strings"

	"github.com/blendle/zapdriver"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// LoggingEnv selects the logger configuration used by a given environment.
type LoggingEnv string

const (
	LoggingEnvDev  LoggingEnv = "dev"
	LoggingEnvProd LoggingEnv = "prod"
)

// String implements the Stringer interface.
func (e LoggingEnv) String() string {
	return string(e)
}

var defaultLoggingEnv = LoggingEnvDev

// Initialize sets up the process-wide logger. env is matched against
// LoggingEnv values; anything unrecognised falls back to the dev
// configuration.
func Initialize(env string) {
	var err error
	var logger *zap.Logger
	switch strings.ToLower(env) {
	case LoggingEnvProd.String():
		defaultLoggingEnv = LoggingEnvProd
		config := zapdriver.NewProductionConfig()
		// Sampling drops repeated log entries, which loses per-token
		// diagnostics on large capture runs.
		config.Sampling = nil
		logger, err = config.Build(zapdriver.WrapCore())
	case LoggingEnvDev.String():
		fallthrough
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		golog.Panic(err)
	}
	zap.RedirectStdLog(logger)

	// Route slog.Default() through the zap core, with context attr support.
	slogger := slog.New(NewContextLogHandler(zapslog.NewHandler(logger.Core(), &zapslog.HandlerOptions{
		AddSource: true,
	})))
	slog.SetDefault(slogger)
}

// LabelAttr marks an attribute as a StackDriver label when running with the
// prod logging config. Otherwise it is an ordinary string attribute.
func LabelAttr(key, value string) slog.Attr {
	if defaultLoggingEnv == LoggingEnvProd {
		return slog.String("labels."+key, value)
	}
	return slog.String(key, value)
}
