package loom

import "github.com/sirupsen/logrus"

// pkgLog is the optional package logger. Nothing is logged until a caller
// installs one; the engine only ever logs at Debug level.
var pkgLog *logrus.Entry

// SetLogger installs a logger for engine diagnostics (change projection,
// offset corrections, pool churn). Pass nil to silence it again.
func SetLogger(l *logrus.Entry) {
	if l != nil {
		l = l.WithField("component", "loom")
	}
	pkgLog = l
}

func debugf(format string, args ...any) {
	if pkgLog != nil {
		pkgLog.Debugf(format, args...)
	}
}
