// Package logger holds the process-wide logrus logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is usable before Init so tests and init-time code never hit a nil logger.
var Log = logrus.New()

// Init configures Log for the given level and environment. Production gets JSON
// output, everything else a human readable text format.
func Init(levelStr, appEnv string) {
	Log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if appEnv == "production" {
		Log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
