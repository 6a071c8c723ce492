package cloner

import (
	"fmt"
	"time"
)

var (
	errEmptyRegion     = fmt.Errorf("empty \"region\" argument")
	errEmptyInstanceID = fmt.Errorf("empty \"source instance id\" argument")
)

// Config is everything needed to run one clone workflow
type Config struct {
	Region           string
	SourceInstanceID string
	RawOverrides     []string

	PollInterval time.Duration
	PollTimeout  time.Duration

	SentryDSN string
	Debug     bool
}

// Validate performs multiple validity checks and returns a slice
// of all errors found
func (cfg *Config) Validate() []error {
	errors := []error{}
	if cfg.Region == "" {
		errors = append(errors, errEmptyRegion)
	}
	if cfg.SourceInstanceID == "" {
		errors = append(errors, errEmptyInstanceID)
	}

	return errors
}
