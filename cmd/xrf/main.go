package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"xrf/config"
	"xrf/state"
)

const appName = "xrf"

// appVersion is a plain constant rather than a build-injected one: the
// teacher's fbc/misc.GetVersion()/GetGitHash() come from an ldflags-set
// package that is outside this toolkit's scope (see DESIGN.md).
const appVersion = "0.1.0"

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(appName); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", appVersion), zap.String("runtime", runtime.Version()))

	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()
	return nil
}

// Ignore urfave/cli default error handling - errors are returned
// directly from subcommands and logged here if a logger is available.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "toolkit for reading, writing, validating and converting X-Ray engine asset formats",
		Version:         appVersion + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting"},
		},
		Commands: []*cli.Command{
			{
				Name:         "unpack-archive",
				Usage:        "Unpacks one or more archive files into a destination directory",
				OnUsageError: usageErrorHandler,
				Action:       unpackArchive,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "archive", Required: true, Usage: "path to an archive `FILE` (may be repeated)"},
					&cli.StringFlag{Name: "destination", Required: true, Usage: "directory to unpack into"},
					&cli.IntFlag{Name: "parallel", Usage: "number of worker goroutines (0: use configured default)"},
				},
			},
			{
				Name:         "pack-archive",
				Usage:        "Builds an archive file from a source directory tree",
				OnUsageError: usageErrorHandler,
				Action:       packArchive,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "source", Required: true, Usage: "source directory to pack"},
					&cli.StringFlag{Name: "output", Required: true, Usage: "archive file to write"},
					&cli.StringFlag{Name: "entry-point", Usage: "root marker stored in the archive's metadata chunk"},
				},
			},
			{
				Name:         "verify-ltx",
				Usage:        "Validates every .ltx file under a directory against the configured schemas",
				OnUsageError: usageErrorHandler,
				Action:       verifyLtx,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Required: true, Usage: "directory to scan for .ltx files"},
				},
			},
			{
				Name:         "format-ltx",
				Usage:        "Reports (or rewrites) .ltx files that are not in canonical form",
				OnUsageError: usageErrorHandler,
				Action:       formatLtx,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Required: true, Usage: "directory to scan for .ltx files"},
					&cli.BoolFlag{Name: "write", Usage: "rewrite files in canonical form instead of only reporting"},
				},
			},
			{
				Name:         "unpack-spawn",
				Usage:        "Decodes a spawn file into a directory of .ltx files",
				OnUsageError: usageErrorHandler,
				Action:       unpackSpawn,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Required: true, Usage: "spawn file to decode"},
					&cli.StringFlag{Name: "destination", Required: true, Usage: "directory to write the spawn project into"},
				},
			},
			{
				Name:         "pack-spawn",
				Usage:        "Re-encodes a directory of .ltx files into a spawn file",
				OnUsageError: usageErrorHandler,
				Action:       packSpawn,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "source", Required: true, Usage: "directory holding the spawn project"},
					&cli.StringFlag{Name: "output", Required: true, Usage: "spawn file to write"},
				},
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
