package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Configure applies c to the standard logrus logger. Output goes to stdout.
func Configure(c Config) error {
	return configure(log.StandardLogger(), os.Stdout, c)
}

func configure(logger *log.Logger, out io.Writer, c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	level, _ := log.ParseLevel(c.Level)
	logger.SetLevel(level)
	logger.SetOutput(out)
	if c.Format == FormatJson {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	}
	return nil
}
