// Package applog configures the logrus logger shared by the laus-build and
// laus-align binaries. laus-core itself never imports this package — it
// takes an optional *logrus.Logger directly (see core/pipeline) — so only
// the CLI layer decides formatting and level.
package applog

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New builds a text-formatted logger writing to w at the given level name
// ("debug", "info", "warn", "error", or any other name logrus.ParseLevel
// accepts; a name it rejects falls back to "info").
func New(w io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(parseLevel(level))
	return l
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
