package main

import (
	"github.com/spf13/cobra"
)

func newMetricsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show analytics breakdowns",
	}

	sub := func(use, short string, run func(*cobra.Command) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return run(cmd) },
		}
	}

	cmd.AddCommand(
		sub("visitors", "Daily visitors and views", func(cmd *cobra.Command) error {
			return runCall(cmd, c.sdk.Analytic.GetVisitors)
		}),
		sub("devices", "Clicks per device type", func(cmd *cobra.Command) error {
			return runCall(cmd, c.sdk.Analytic.GetDevices)
		}),
		sub("os", "Clicks per operating system", func(cmd *cobra.Command) error {
			return runCall(cmd, c.sdk.Analytic.GetOS)
		}),
		sub("countries", "Clicks per country", func(cmd *cobra.Command) error {
			return runCall(cmd, c.sdk.Analytic.GetCountries)
		}),
		sub("browsers", "Clicks per browser", func(cmd *cobra.Command) error {
			return runCall(cmd, c.sdk.Analytic.GetBrowsers)
		}),
		sub("cities", "Clicks per city", func(cmd *cobra.Command) error {
			return runCall(cmd, c.sdk.Analytic.GetCities)
		}),
	)
	return cmd
}
