package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2index-ninja/sdk-go/internal/constants"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// NewSitemapsCommand creates the sitemaps command group.
func NewSitemapsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sitemaps",
		Aliases: []string{"sitemap", "s"},
		Short:   "Manage project sitemaps",
		Long:    "Add, watch and delete sitemaps whose links are submitted for indexing",
	}

	cmd.AddCommand(newSitemapsAddCommand())
	cmd.AddCommand(newSitemapsWatchCommand("watch", true))
	cmd.AddCommand(newSitemapsWatchCommand("unwatch", false))
	cmd.AddCommand(newSitemapsDeleteCommand())

	return cmd
}

func newSitemapsAddCommand() *cobra.Command {
	var (
		engines engineFlags
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "add PROJECT_ID SITEMAP_URL",
		Short: "Add a sitemap",
		Long:  "Add a sitemap to a project; watched sitemaps are re-read for new links",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], constants.ErrInvalidProjectID)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			message, err := client.AddSitemap(commandContext(cmd), &twoindex.SitemapAddRequest{
				ProjectID:           projectID,
				SitemapURL:          args[1],
				SearchEngineTargets: engines.targets(),
				GoogleAccessGranted: engines.googleAccessGranted,
				Watch:               watch,
			})
			if err != nil {
				return fmt.Errorf("failed to add sitemap: %w", err)
			}

			printMessage(cmd, message, "Sitemap added")

			return nil
		},
	}

	engines.register(cmd)
	cmd.Flags().BoolVar(&watch, "watch", false, "re-read the sitemap for new links")

	return cmd
}

func newSitemapsWatchCommand(use string, watch bool) *cobra.Command {
	short := "Start watching a sitemap"
	if !watch {
		short = "Stop watching a sitemap"
	}

	return &cobra.Command{
		Use:   use + " PROJECT_ID SITEMAP_ID",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], constants.ErrInvalidProjectID)
			if err != nil {
				return err
			}

			sitemapID, err := parseID(args[1], constants.ErrInvalidSitemapID)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			_, err = client.UpdateSitemapWatch(commandContext(cmd), projectID, sitemapID, watch)
			if err != nil {
				return fmt.Errorf("failed to update sitemap: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sitemap %d watch: %s\n", sitemapID, yesNo(watch))

			return nil
		},
	}
}

func newSitemapsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROJECT_ID SITEMAP_ID",
		Short: "Delete a sitemap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], constants.ErrInvalidProjectID)
			if err != nil {
				return err
			}

			sitemapID, err := parseID(args[1], constants.ErrInvalidSitemapID)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			message, err := client.DeleteSitemap(commandContext(cmd), projectID, sitemapID)
			if err != nil {
				return fmt.Errorf("failed to delete sitemap: %w", err)
			}

			printMessage(cmd, message, "Sitemap deleted")

			return nil
		},
	}
}
