// peoplebridge - Google Contacts over MCP and a small REST API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/peoplebridge/internal/infra/config"
	"github.com/matiasleandrokruk/peoplebridge/internal/infra/logger"
	"github.com/matiasleandrokruk/peoplebridge/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// usageError marks bad flags or arguments; run maps it to exit code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func run(ctx context.Context, args []string, out io.Writer) int {
	root := newRootCmd(out)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err) //nolint:errcheck
		var ue usageError
		if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
			return 2
		}
		return 1
	}
	return 0
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
}

// load reads the config file (flag, then PEOPLEBRIDGE_CONFIG) plus env overrides
// and initialises the process logger.
func (o *globalOptions) load() (config.Config, error) {
	load := config.Load
	if o.configPath != "" {
		load = func() (config.Config, error) { return config.LoadFile(o.configPath) }
	}
	cfg, err := load()
	if err != nil {
		return config.Config{}, err
	}
	logger.Init(logger.Config{Debug: cfg.LogDebug, Pretty: cfg.LogPretty})
	return cfg, nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "peoplebridge",
		Short:         "Manage Google Contacts through MCP tools and a REST API",
		Long:          "peoplebridge exposes list, get, create, update and delete operations on Google Contacts\nas MCP tools (stdio or streamable HTTP) and as JWT-protected REST endpoints.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		newServeCmd(opts),
		newAuthCmd(opts),
		newTokenCmd(opts),
		newMigrateCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
