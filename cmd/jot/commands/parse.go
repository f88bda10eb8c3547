package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.jot.dev/jot/internal/app"
)

func (c *CLI) newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Parse a task without saving it",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			noDaemon, _ := cmd.Flags().GetBool("no-daemon")

			_, err := c.app.Parse(cmd.Context(), strings.Join(args, " "), app.ParseOptions{
				NoDaemon: noDaemon,
			})
			return err
		},
	}
	cmd.Flags().Bool("no-daemon", false, "Bypass the resident daemon and parse in-process")
	return cmd
}
