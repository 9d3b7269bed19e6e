// Package logging wires up the process-wide logrus logger, replacing
// the teacher's log.Printf calls with structured, level-aware logging.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger configured from level/format strings as
// accepted by Config.LogLevel / Config.LogFormat.
func New(level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
