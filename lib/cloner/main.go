package cloner

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hamfist/ec2-clone/lib"
)

var log = logrus.New()

// Main runs one clone workflow end to end against the real EC2
// control plane and returns the new instance id.
func Main(ctx context.Context, cfg *Config) (string, error) {
	if cfg.Debug {
		log.Level = logrus.DebugLevel
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return "", &lib.MultiError{Errors: errs}
	}

	conn := newEC2(cfg.Region)

	c, err := newCloner(conn, cfg)
	if err != nil {
		return "", err
	}

	instanceID, err := c.Clone(ctx)
	if err != nil {
		return "", err
	}

	log.WithFields(logrus.Fields{
		"instance_id": instanceID,
		"source":      cfg.SourceInstanceID,
	}).Info("clone complete")

	return instanceID, nil
}
