// Package cli wires the widget-remote commands: a server that opens a
// dialog and client commands that act on it.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/atomicstack/widget-remote/internal/client"
	"github.com/atomicstack/widget-remote/internal/config"
	"github.com/atomicstack/widget-remote/internal/logging"
	"github.com/atomicstack/widget-remote/internal/theme"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

// flagKeys maps command line flags onto configuration paths. Only flags the
// user actually set override lower layers.
var flagKeys = map[string]string{
	"server":          "client.server",
	"timeout":         "client.timeout",
	"log-file":        "logging.file",
	"trace":           "logging.trace",
	"verbose":         "logging.verbosity",
	"listen":          "server.listen",
	"headless":        "server.headless",
	"layout":          "server.layout",
	"redraw-interval": "server.redraw_interval",
}

type options struct {
	configFile string
	cfg        config.Config
	styles     *theme.Styles
}

// configError marks failures that happened before a command could run.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "widget-remote",
		Short: "Drive dialog widgets over HTTP",
		Long: `widget-remote opens a dialog and exposes its widgets over a small HTTP
API, so tests and scripts can press buttons, fill in fields and pick
items remotely. The same binary is the client for that API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/widget-remote/config.yaml)")
	flags.String("server", "", "server URL for client commands (default http://127.0.0.1:14155)")
	flags.Duration("timeout", 0, "client request timeout (default 10s)")
	flags.String("log-file", "", "path to the log file")
	flags.Bool("trace", false, "enable JSON trace logging")
	flags.CountP("verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")

	root.AddCommand(
		newServeCommand(o),
		newDoCommand(o),
		newWidgetsCommand(o),
		newBatchCommand(o),
		newPickCommand(o),
		newVersionCommand(o),
	)
	return root
}

func (o *options) load(cmd *cobra.Command, args []string) error {
	overrides := make(map[string]interface{})
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})

	cfg, err := config.Load(config.Options{
		File:  o.configFile,
		Flags: overrides,
		Args:  append([]string{cmd.CommandPath()}, args...),
	})
	if err != nil {
		return &configError{err}
	}
	if err := config.Validate(cfg); err != nil {
		return &configError{err}
	}
	o.cfg = cfg

	logging.Configure(cfg.Logging.FilePath)
	logging.SetVerbosity(cfg.Logging.Verbosity)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	traceStartup(cfg)

	o.styles = stylesFor(cmd.OutOrStdout())
	cliLog := logging.Logger("cli")
	cliLog.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}

func (o *options) client() (*client.Client, error) {
	return client.New(o.cfg.Client.Server, o.cfg.Client.Timeout)
}

// stylesFor colors output only when w is a terminal.
func stylesFor(w io.Writer) *theme.Styles {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return theme.Default()
	}
	return theme.Plain()
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	logging.Error(err)
	styles := stylesFor(stderr)
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintln(stderr, styles.Error.Render("Configuration error: "+cfgErr.Error()))
		return exitConfig
	}
	fmt.Fprintln(stderr, styles.Error.Render("Error: "+err.Error()))
	return exitFailed
}
