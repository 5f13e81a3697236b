package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging configures the logger from the -v and -log-file flags. Without -v the level is
// taken from FINSEC_LOG_LEVEL, warning by default.
func SetupLogging() error {
	level := logrus.WarnLevel
	if env := os.Getenv("FINSEC_LOG_LEVEL"); env != "" {
		l, err := logrus.ParseLevel(env)
		if err != nil {
			return fmt.Errorf("invalid FINSEC_LOG_LEVEL: %w", err)
		}
		level = l
	}
	if *verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if *logFile == "" {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		return nil
	}
	logrus.SetOutput(&lumberjack.Logger{
		Filename:   *logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})
	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	return nil
}
