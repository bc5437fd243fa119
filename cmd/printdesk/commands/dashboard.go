package commands

import (
	"time"

	"github.com/spf13/cobra"
)

func newDashboardCommand() *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show revenue, recent orders and money owed",
		Long:  "Show the PIN-protected dashboard. Pass --pin, or unlock once with `printdesk pin unlock`.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			ctx := cmd.Context()

			var token string
			var err error
			if pin != "" {
				token, err = a.dashboard.Unlock(ctx, pin)
			} else {
				token, err = loadToken(a.cfg.Auth.TokenPath)
			}
			if err != nil {
				return describe(err)
			}

			summary, err := a.dashboard.Summary(ctx, token)
			if err != nil {
				return describe(err)
			}

			if a.cfg.Metrics.Textfile != "" {
				if err := a.collectors.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
					return err
				}
			}
			return printSummary(cmd.OutOrStdout(), summary, time.Now())
		},
	}
	cmd.Flags().StringVar(&pin, "pin", "", "dashboard PIN")
	return cmd
}
