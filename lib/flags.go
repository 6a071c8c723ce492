package lib

import (
	"os"
	"time"

	"github.com/urfave/cli"
)

var (
	// PollIntervalFlag sets how often the image provisioner polls
	// DescribeImages while waiting for a fresh AMI
	PollIntervalFlag = cli.DurationFlag{
		Name:   "i, poll-interval",
		Value:  10 * time.Second,
		Usage:  "interval between AMI state polls",
		EnvVar: "EC2_CLONE_POLL_INTERVAL",
	}
	// PollTimeoutFlag bounds the AMI wait; zero keeps polling until
	// the image reaches a terminal state
	PollTimeoutFlag = cli.DurationFlag{
		Name:   "poll-timeout",
		Usage:  "give up waiting for the AMI after this long (0 = wait forever)",
		EnvVar: "EC2_CLONE_POLL_TIMEOUT",
	}
	// SentryDSNFlag is the dsn string used to initialize the raven
	// client for failure reporting
	SentryDSNFlag = cli.StringFlag{
		Name:   "sentry-dsn",
		Value:  os.Getenv("SENTRY_DSN"),
		EnvVar: "EC2_CLONE_SENTRY_DSN",
	}
	// DebugFlag enables debug logging
	DebugFlag = cli.BoolFlag{
		Name:   "debug",
		EnvVar: "DEBUG",
	}
)
