package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/press/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run tasks in order (default: build, then serve with live reload)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			open, _ := cmd.Flags().GetBool("open")
			port, _ := cmd.Flags().GetInt("port")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				Open: open,
				Port: port,
			})
		},
	}
	cmd.Flags().Bool("open", false, "Open the served site in a browser")
	cmd.Flags().IntP("port", "p", 0, "Port of the development server (overrides press.yaml)")
	return cmd
}
