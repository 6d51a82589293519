package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/docut-go/internal/app"
)

func newReportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Fetch every analytics breakdown and publish a metrics snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			reporter, err := app.NewReporter(cmd.Context(), c.cfg, c.log)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, reporter.Close())
			}()

			snap, err := reporter.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), snap)
		},
	}
}
