package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/docut-go/pkg/docut"
	"github.com/samvad-hq/docut-go/pkg/httpclient"
)

func newLinkCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage short links",
	}
	cmd.AddCommand(
		newLinkCreateCmd(c),
		newLinkGetCmd(c),
		newLinkUpdateCmd(c),
		newLinkDeleteCmd(c),
		newLinkListCmd(c),
		newLinkPublicCmd(c),
	)
	return cmd
}

type seoFlags struct {
	title            string
	description      string
	clearTitle       bool
	clearDescription bool
}

func (f *seoFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "seo-title", "", "SEO title")
	cmd.Flags().StringVar(&f.description, "seo-description", "", "SEO description")
}

func (f *seoFlags) bindClear(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.clearTitle, "clear-seo-title", false, "remove the SEO title")
	cmd.Flags().BoolVar(&f.clearDescription, "clear-seo-description", false, "remove the SEO description")
	cmd.MarkFlagsMutuallyExclusive("seo-title", "clear-seo-title")
	cmd.MarkFlagsMutuallyExclusive("seo-description", "clear-seo-description")
}

// input returns nil unless at least one SEO flag was given.
func (f *seoFlags) input(cmd *cobra.Command) *docut.SeoInput {
	var in docut.SeoInput
	if cmd.Flags().Changed("seo-title") {
		in.Title = &f.title
	}
	if cmd.Flags().Changed("seo-description") {
		in.Description = &f.description
	}
	in.ClearTitle = f.clearTitle
	in.ClearDescription = f.clearDescription
	if in.Empty() {
		return nil
	}
	return &in
}

func parseExpiration(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --expiration %q (want RFC3339): %w", value, err)
	}
	return &t, nil
}

func newLinkCreateCmd(c *cli) *cobra.Command {
	var (
		target     string
		expiration string
		seo        seoFlags
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Shorten a URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exp, err := parseExpiration(expiration)
			if err != nil {
				return err
			}
			req := docut.CreateLinkRequest{URL: target, Expiration: exp, Seo: seo.input(cmd)}
			return runCall(cmd, func(ctx context.Context) (httpclient.Result[docut.LinkWithSeo, docut.APIError], error) {
				return c.sdk.Link.Create(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&target, "url", "", "destination URL")
	cmd.Flags().StringVar(&expiration, "expiration", "", "expiry time in RFC3339")
	seo.bind(cmd)
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newLinkGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context) (httpclient.Result[docut.LinkWithSeo, docut.APIError], error) {
				return c.sdk.Link.Get(ctx, docut.GetLinkRequest{ID: args[0]})
			})
		},
	}
}

func newLinkUpdateCmd(c *cli) *cobra.Command {
	var (
		target          string
		expiration      string
		clearExpiration bool
		seo             seoFlags
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a link's URL, expiry or SEO",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearExpiration && expiration != "" {
				return fmt.Errorf("--expiration and --clear-expiration are mutually exclusive")
			}
			exp, err := parseExpiration(expiration)
			if err != nil {
				return err
			}
			req := docut.UpdateLinkRequest{
				ID:              args[0],
				Expiration:      exp,
				ClearExpiration: clearExpiration,
				Seo:             seo.input(cmd),
			}
			if cmd.Flags().Changed("url") {
				req.URL = &target
			}
			return runCall(cmd, func(ctx context.Context) (httpclient.Result[docut.LinkWithSeo, docut.APIError], error) {
				return c.sdk.Link.Update(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&target, "url", "", "new destination URL")
	cmd.Flags().StringVar(&expiration, "expiration", "", "new expiry time in RFC3339")
	cmd.Flags().BoolVar(&clearExpiration, "clear-expiration", false, "remove the expiry")
	seo.bind(cmd)
	seo.bindClear(cmd)
	return cmd
}

func newLinkDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context) (httpclient.Result[docut.DeleteLinkResponse, docut.APIError], error) {
				return c.sdk.Link.Delete(ctx, docut.DeleteLinkRequest{ID: args[0]})
			})
		},
	}
}

func newLinkListCmd(c *cli) *cobra.Command {
	var req docut.ListLinksRequest
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCall(cmd, func(ctx context.Context) (httpclient.Result[docut.ListLinksResponse, docut.APIError], error) {
				return c.sdk.Link.List(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&req.SortBy, "sort-by", "", "field to sort by")
	cmd.Flags().StringVar(&req.SortDirection, "sort-direction", "", "asc or desc")
	cmd.Flags().IntVar(&req.PerPage, "per-page", 0, "page size")
	cmd.Flags().IntVar(&req.Page, "page", 0, "page number")
	cmd.Flags().StringVar(&req.ID, "id", "", "filter by link id")
	return cmd
}

func newLinkPublicCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "public <id>",
		Short: "Show a link through the public endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context) (httpclient.Result[docut.LinkWithSeo, docut.APIError], error) {
				return c.sdk.Link.GetPublic(ctx, docut.GetPublicLinkRequest{ID: args[0]})
			})
		},
	}
}
