package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/happycyhe/Happyfamily-Lotto/internal/adapters/share"
	"github.com/happycyhe/Happyfamily-Lotto/internal/app"
	"github.com/happycyhe/Happyfamily-Lotto/internal/config"
)

func newShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Copy the 'which number won't come up?' request for a friend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Terminals have no share sheet; clipboard first, stdout last.
			helper := app.NewShareHelper(nil, share.Chain{
				share.NewClipboard(),
				share.NewPrinter(cmd.OutOrStdout()),
			}, newLogger(cmd.ErrOrStderr(), cfg))

			outcome, err := helper.RequestExclusionInput(cmd.Context())
			if err != nil {
				return err
			}
			if outcome == app.ShareOutcomeCopied {
				fmt.Fprintln(cmd.OutOrStdout(), app.CopiedNotice)
			}
			return nil
		},
	}
}
