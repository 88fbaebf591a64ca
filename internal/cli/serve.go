package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/atomicstack/widget-remote/internal/app"
	"github.com/atomicstack/widget-remote/internal/version"
)

func newServeCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Open a dialog and accept remote actions",
		Long: `serve opens the dialog described by --layout (or a built-in demo dialog)
and listens for widget actions. Without --headless the dialog is shown in
the terminal and the server stops when you quit it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, app.Config{
				Listen:         o.cfg.Server.Listen,
				Headless:       o.cfg.Server.Headless,
				Layout:         o.cfg.Server.Layout,
				RedrawInterval: o.cfg.Server.RedrawInterval,
				Version:        version.Version,
			})
		},
	}
	cmd.Flags().String("listen", "", "address to listen on (default 127.0.0.1:14155)")
	cmd.Flags().Bool("headless", false, "keep widgets in memory instead of drawing them")
	cmd.Flags().String("layout", "", "YAML dialog layout (default: built-in demo dialog)")
	cmd.Flags().Duration("redraw-interval", 0, "minimum time between redraws (default 50ms)")
	return cmd
}
