// snakebnb is the interactive Snake BnB console. Guests register snakes and
// book cages, hosts register cages and open availability windows.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/VB6Enjoyer/snakebnb/internal/cli"
	"github.com/VB6Enjoyer/snakebnb/internal/di"
	"github.com/VB6Enjoyer/snakebnb/pkg/config"
	"github.com/VB6Enjoyer/snakebnb/pkg/logger"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var configPath string
	var modeFlag string
	var logOutput string
	var showVersion bool

	flagSet := pflag.NewFlagSet("snakebnb", pflag.ContinueOnError)
	flagSet.SetOutput(stdout)
	flagSet.StringVar(&configPath, "config", "", "env file to load (default: .env in the working directory, if present)")
	flagSet.StringVar(&modeFlag, "mode", "", "start as guest or host instead of asking")
	flagSet.StringVar(&logOutput, "log-output", "", "write log records to this file (overrides LOG_OUTPUT)")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stdout, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stdout, flagSet)
		return nil
	}
	if showVersion {
		fmt.Fprintf(stdout, "snakebnb %s\n", version)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	mode, err := cli.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if cfg.App.Debug {
		level = "debug"
	}
	output := cfg.Log.Output
	if logOutput != "" {
		output = logOutput
	}
	if err := logger.Init(&logger.Config{
		Level:       level,
		ServiceName: cfg.App.Name,
		Development: cfg.App.Debug,
		OutputPaths: []string{output},
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		logger.Get().Warn("tracing disabled: " + err.Error())
	}
	defer shutdownTelemetry()

	container, err := di.Build(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := container.Close(closeCtx); err != nil {
			logger.Get().Warn("failed to close store: " + err.Error())
		}
	}()

	app := cli.NewApp(cli.Services{
		Accounts: container.AccountService,
		Snakes:   container.SnakeService,
		Cages:    container.CageService,
		Bookings: container.BookingService,
	}, cli.NewConsole(stdin, stdout), logger.Get())

	return app.Run(ctx, mode)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadWithPath(path)
	}
	return config.Load()
}

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = telemetry.Shutdown(ctx)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `snakebnb - book a cage for your snake, or offer extra cage space

Usage:
  snakebnb [flags]

The store is selected with STORE_DRIVER (mongodb, postgres or memory).
Settings are read from the environment and an optional .env file.

Flags:
%s`, flagSet.FlagUsages())
}
