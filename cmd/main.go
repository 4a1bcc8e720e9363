// Package main provides the CLI entrypoint for the order sync service. It
// wires subcommands (serve, reconcile, customs, jwt), loads configuration,
// and initializes logging.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"ordersync/internal/config"
	"ordersync/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig reads the config file at path, falling back to environment
// variables and defaults when the file does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Printf("config file %s not found, reading environment\n", path)

		return config.LoadEnv() //nolint: wrapcheck
	}

	return config.Load(path) //nolint: wrapcheck
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "ordersync",
		Short: "Reconciles fulfillment orders with the storefront and declares customs",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	fset := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	configPath := fset.String("c", "config.yml", "The config file path")
	_ = fset.Parse(configArgs(os.Args[1:]))

	log.Println("loading config ...")
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("could not load config: ", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()
	if cfg.LogLevel != "" {
		if err := logger.SetLevel(cfg.LogLevel); err != nil {
			logger.Warn(ctx, "ignoring log level", zap.Error(err))
		}
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		reconcileCommand(cfg),
		customsCommand(cfg),
		JWTCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// configArgs extracts the -c/--config flag from args so it can be read
// before cobra parses the subcommand flags.
func configArgs(args []string) []string {
	for i, a := range args {
		switch {
		case (a == "-c" || a == "--config" || a == "-config") && i+1 < len(args):
			return []string{"-c", args[i+1]}
		case strings.HasPrefix(a, "-c="):
			return []string{a}
		case strings.HasPrefix(a, "--config="):
			return []string{"-c=" + strings.TrimPrefix(a, "--config=")}
		}
	}

	return nil
}
