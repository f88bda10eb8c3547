package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.jot.dev/jot/internal/app"
)

func (c *CLI) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Parse a task and save it",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			noDaemon, _ := cmd.Flags().GetBool("no-daemon")

			return c.app.Add(cmd.Context(), strings.Join(args, " "), app.ParseOptions{
				NoDaemon: noDaemon,
			})
		},
	}
	cmd.Flags().Bool("no-daemon", false, "Bypass the resident daemon and parse in-process")
	return cmd
}
