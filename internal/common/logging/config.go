package logging

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
)

const (
	FormatText = "text"
	FormatJson = "json"
)

var validLogFormats = map[string]bool{
	FormatText: true,
	FormatJson: true,
}

// Config defines console logging configuration.
type Config struct {
	// Log level, e.g. info, debug etc
	Level string
	// Logging format, either text or json
	Format string
}

// Validate checks that both the level and the format are understood.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Level); err != nil {
		return errors.WithStack(err)
	}
	if !validLogFormats[c.Format] {
		formats := maps.Keys(validLogFormats)
		sort.Strings(formats)
		return errors.Errorf("unknown log format: %s.  Valid formats are %s", c.Format, formats)
	}
	return nil
}
