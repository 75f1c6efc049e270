// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger based on level and format.
// Logs go to stderr so that stdout only carries the run summary.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	SetupTo(os.Stderr, level, format)
}

// SetupTo is Setup with an explicit destination.
func SetupTo(w io.Writer, level, format string) {
	log.SetOutput(w)
	log.SetLevel(parseLevel(level))

	if strings.ToLower(format) == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ForRun returns an entry tagging every line with the harvest run id.
func ForRun(runID string) *log.Entry {
	return log.WithField("run_id", runID)
}
