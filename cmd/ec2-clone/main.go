package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/raven-go"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/hamfist/ec2-clone/lib"
	"github.com/hamfist/ec2-clone/lib/cloner"
)

func main() {
	app := cli.NewApp()
	app.Name = "ec2-clone"
	app.Usage = "snapshot a running EC2 instance and launch a copy of it"
	app.ArgsUsage = fmt.Sprintf("<region> <source-instance-id> [key=value ...]\n\n   supported override keys: %s",
		lib.SupportedOverrideKeys())
	app.Version = lib.VersionString
	app.Compiled = lib.GeneratedTime()
	app.Flags = []cli.Flag{
		lib.PollIntervalFlag,
		lib.PollTimeoutFlag,
		lib.SentryDSNFlag,
		lib.DebugFlag,
	}
	app.Action = runClone

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runClone(c *cli.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return cli.NewExitError(
			fmt.Sprintf("insufficient arguments, expected: %s <region> <source-instance-id> [key=value ...]", c.App.Name), 64)
	}

	fileCfg, err := lib.ReadFileConfig()
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("failed to read config file: %v", err), 78)
	}

	cfg := &cloner.Config{
		Region:           args.Get(0),
		SourceInstanceID: args.Get(1),
		RawOverrides:     args[2:],

		PollInterval: c.Duration("poll-interval"),
		PollTimeout:  c.Duration("poll-timeout"),

		SentryDSN: c.String("sentry-dsn"),
		Debug:     c.Bool("debug"),
	}
	if err := applyFileConfig(c, cfg, fileCfg); err != nil {
		return cli.NewExitError(fmt.Sprintf("failed to apply config file: %v", err), 78)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instanceID, err := cloner.Main(ctx, cfg)
	if err != nil {
		reportError(cfg.SentryDSN, err)
		return cli.NewExitError(fmt.Sprintf("clone failed: %v", err), 1)
	}

	fmt.Println(instanceID)
	return nil
}

// applyFileConfig fills in config file defaults for anything not set
// explicitly via flag or env var.
func applyFileConfig(c *cli.Context, cfg *cloner.Config, fileCfg *lib.FileConfig) error {
	if !c.IsSet("poll-interval") && fileCfg.PollInterval != "" {
		d, err := time.ParseDuration(fileCfg.PollInterval)
		if err != nil {
			return err
		}
		cfg.PollInterval = d
	}
	if !c.IsSet("poll-timeout") && fileCfg.PollTimeout != "" {
		d, err := time.ParseDuration(fileCfg.PollTimeout)
		if err != nil {
			return err
		}
		cfg.PollTimeout = d
	}
	if cfg.SentryDSN == "" {
		cfg.SentryDSN = fileCfg.SentryDSN
	}
	return nil
}

func reportError(dsn string, cloneErr error) {
	if dsn == "" {
		return
	}

	cl, err := raven.New(dsn)
	if err != nil {
		log.WithField("err", err).Error("failed to build sentry client")
		return
	}

	packet := raven.NewPacket(cloneErr.Error(),
		raven.NewException(cloneErr, raven.NewStacktrace(0, 3, nil)))
	_ = lib.SendRavenPacket(packet, cl, log.StandardLogger())
}
