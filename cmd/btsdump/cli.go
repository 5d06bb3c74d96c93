package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/arloliu/bts/internal/logs"
)

var keyReplacer = strings.NewReplacer(".", "_")

var (
	flagConfig = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML config file, default ~/.config/bts/config.yaml if present.",
		EnvVars: []string{"BTS_CONFIG"},
	}
	flagLogLevel = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "log level: debug, info, warn or error.",
		EnvVars: []string{"BTS_LOG_LEVEL"},
	}
	flagFrom = &cli.IntFlag{
		Name:  "from",
		Usage: "first sample index.",
		Value: 0,
		Action: func(_ *cli.Context, from int) error {
			if from < 0 {
				return fmt.Errorf("--from must not be negative, got %d", from)
			}
			return nil
		},
	}
	flagUpto = &cli.IntFlag{
		Name:  "upto",
		Usage: "last sample index, inclusive; default is the last sample.",
		Value: -1,
	}
	flagAs = &cli.StringFlag{
		Name:  "as",
		Usage: "output type: BYTE, SHORT, INT, LONG, FLOAT or DOUBLE.",
	}
	flagRaw = &cli.BoolFlag{
		Name:  "raw",
		Usage: "print raw samples without applying scaling.",
	}
	flagLimit = &cli.IntFlag{
		Name:  "limit",
		Usage: "print at most this many samples, 0 for all.",
	}
	flagLower = &cli.StringFlag{
		Name:     "lower",
		Usage:    "lower time bound, inclusive.",
		Required: true,
	}
	flagUpper = &cli.StringFlag{
		Name:     "upper",
		Usage:    "upper time bound, inclusive.",
		Required: true,
	}
	flagStrict = &cli.BoolFlag{
		Name:  "strict",
		Usage: "fail if the header does not decode.",
	}
)

// Wrapper assembles the btsdump application.
type Wrapper struct {
	app    *cli.App
	config *viper.Viper
}

func NewWrapper() *Wrapper {
	wrapper := &Wrapper{
		app: &cli.App{
			Name:      "btsdump",
			Usage:     "inspect BinaryTimeseries (.bts) records",
			Version:   "0.1.0",
			Writer:    os.Stdout,
			ErrWriter: os.Stderr,
		},
	}
	wrapper.withFlags()
	wrapper.withBefore()
	wrapper.withCommands()

	return wrapper
}

func (wrapper *Wrapper) Run(args []string) error {
	return wrapper.app.Run(args)
}

func (wrapper *Wrapper) withFlags() {
	wrapper.app.Flags = []cli.Flag{
		flagConfig,
		flagLogLevel,
	}
}

// withBefore loads the config and installs the logger before any command runs.
func (wrapper *Wrapper) withBefore() {
	wrapper.app.Before = func(ctx *cli.Context) error {
		path, explicit := ctx.String(flagConfig.Name), ctx.IsSet(flagConfig.Name)
		if !explicit {
			path = defaultConfigPath()
		}

		cfg, err := loadConfig(path, explicit)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		wrapper.config = cfg

		level := cfg.GetString(keyLogLevel)
		if ctx.IsSet(flagLogLevel.Name) {
			level = ctx.String(flagLogLevel.Name)
		}
		logger, err := logs.NewLoggerAt(level)
		if err != nil {
			return fmt.Errorf("log level %q: %w", level, err)
		}
		logs.SetLogger(logger)
		logs.Named("btsdump").Debug("config loaded",
			zap.String(logs.FieldPath, cfg.ConfigFileUsed()), zap.String("level", level))

		return nil
	}

	wrapper.app.After = func(*cli.Context) error {
		_ = logs.Logger().Sync()
		logs.SetLogger(nil)

		return nil
	}
}

func (wrapper *Wrapper) withCommands() {
	wrapper.app.Commands = []*cli.Command{
		{
			Name:      "explain",
			Usage:     "print the header fields of a record",
			ArgsUsage: "<file>",
			Flags:     []cli.Flag{flagStrict},
			Action:    wrapper.explain,
		},
		{
			Name:      "read",
			Usage:     "print samples with their timestamps",
			ArgsUsage: "<file>",
			Flags:     []cli.Flag{flagFrom, flagUpto, flagAs, flagRaw, flagLimit},
			Action:    wrapper.read,
		},
		{
			Name:      "timebase",
			Usage:     "print the index range of the samples inside [lower, upper]",
			ArgsUsage: "<file>",
			Flags:     []cli.Flag{flagLower, flagUpper},
			Action:    wrapper.timebase,
		},
		{
			Name:      "digest",
			Usage:     "print the xxHash64 digest of each record",
			ArgsUsage: "<file>...",
			Action:    wrapper.digest,
		},
	}
}
