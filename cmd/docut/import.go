package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/docut-go/internal/app"
)

func newImportCmd(c *cli) *cobra.Command {
	var (
		withSeo    bool
		expiration string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "import <sitemap-url>",
		Short: "Shorten every new URL listed in a sitemap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			exp, err := parseExpiration(expiration)
			if err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			im, err := app.NewImporter(cmd.Context(), c.cfg, c.log, app.ImportOptions{WithSeo: withSeo})
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, im.Close())
			}()

			summary, runErr := im.Run(cmd.Context(), args[0], exp, limit)
			if printErr := printJSON(cmd.OutOrStdout(), summary); printErr != nil {
				return errors.Join(runErr, printErr)
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&withSeo, "seo", false, "prefill SEO from each page's meta tags")
	cmd.Flags().StringVar(&expiration, "expiration", "", "expiry time in RFC3339 for every created link")
	cmd.Flags().IntVar(&limit, "limit", 0, "create at most this many links (0 = no limit)")
	return cmd
}
