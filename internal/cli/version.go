package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/atomicstack/widget-remote/internal/version"
)

const versionProbeTimeout = 2 * time.Second

func newVersionCommand(o *options) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "widget-remote version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
			if local {
				return nil
			}
			c, err := o.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), versionProbeTimeout)
			defer cancel()
			if v, err := c.Version(ctx); err == nil {
				fmt.Fprintf(out, "  server: %s (%s)\n", v, o.cfg.Client.Server)
			} else {
				fmt.Fprintf(out, "  server: %s\n", o.styles.Hint.Render("unreachable at "+o.cfg.Client.Server))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "do not query the server")
	return cmd
}
