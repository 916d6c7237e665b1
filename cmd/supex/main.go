// Command supex drives the Supex desktop runtime from the command line.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	supex "github.com/supexhq/supex-go"
)

var flags struct {
	host    string
	port    int
	agent   string
	verbose bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp().ExecuteContext(ctx); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func newApp() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "supex",
		Short:         "CLI for Supex runtime automation",
		Version:       supex.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.host, "host", "", "runtime host (overrides SUPEX_HOST)")
	rootCmd.PersistentFlags().IntVarP(&flags.port, "port", "p", 0, "runtime port (overrides SUPEX_PORT)")
	rootCmd.PersistentFlags().StringVar(&flags.agent, "agent", "user", "agent identity for the shared connection")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newStatusCommand(),
		newCallCommand(),
		newResourcesCommand(),
		newDocsCommand(),
		newMCPCommand(),
	)

	return rootCmd
}

// newLogger returns a stderr logger honoring --verbose. Logs go to stderr
// so piped JSON output stays clean.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runtimeConnection builds the runtime connection from environment
// configuration with flag overrides applied.
func runtimeConnection() (*supex.Connection, error) {
	cfg, err := supex.LoadConfig()
	if err != nil {
		return nil, err
	}

	if flags.host != "" {
		cfg.Host = flags.host
	}

	if flags.port != 0 {
		cfg.Port = flags.port
	}

	return supex.NewConnection(cfg.ConnOptions(flags.agent, newLogger())), nil
}

// printError renders a failure with remediation hints per error kind.
func printError(err error) {
	var rerr *supex.RemoteError
	if stderrors.As(err, &rerr) {
		color.Red("Runtime error %d: %s", rerr.Code, rerr.Message)

		if file := rerr.File(); file != "" {
			fmt.Fprintf(os.Stderr, "  at %s:%d\n", file, rerr.Line())
		}

		if hint := rerr.Hint(); hint != "" {
			fmt.Fprintf(os.Stderr, "  hint: %s\n", hint)
		}

		return
	}

	var cerr *supex.ConnectionError
	if stderrors.As(err, &cerr) {
		color.Red("Connection error: %v", err)
		fmt.Fprintln(os.Stderr, "Make sure the Supex runtime is running.")

		return
	}

	color.Red("Error: %v", err)
}
