package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/truthpulse/truthpulse/internal/feed"
)

var (
	feedsDays       int
	feedsMaxPerFeed int
	feedsTimeout    time.Duration
)

// feedsCmd represents the feeds command
var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Inspect configured news feeds",
}

var feedsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured feed sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sources, err := feed.LoadSources(cfg.RSS.SourcesPath)
		if err != nil {
			return err
		}

		for _, source := range sources {
			marker := " "
			if source.Reliable {
				marker = "*"
			}
			fmt.Printf("%s [%s] %-30s %s\n", marker, source.Category, source.Name, source.URL)
		}
		fmt.Fprintf(os.Stderr, "\n%d sources (* = reliable)\n", len(sources))
		return nil
	},
}

var feedsFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch recent articles from all configured feeds",
	Long: `Fetch pulls recent articles from every configured source, honoring
robots.txt and per-domain rate limits, and prints what was found.

Example:
  truthpulse feeds fetch
  truthpulse feeds fetch --days 7 --max-per-feed 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), feedsTimeout)
		defer cancel()

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sources, err := feed.LoadSources(a.cfg.RSS.SourcesPath)
		if err != nil {
			return err
		}

		fetcher := feed.NewFetcher(sources, a.cfg, a.log)
		items, err := fetcher.Recent(ctx, feedsDays, feedsMaxPerFeed)
		if err != nil {
			return err
		}

		for _, item := range items {
			fmt.Printf("[%s] %s\n    %s\n", item.SourceDomain, item.Title, item.URL)
		}
		fmt.Fprintf(os.Stderr, "\n%d articles from %d sources\n", len(items), len(sources))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedsCmd)
	feedsCmd.AddCommand(feedsListCmd)
	feedsCmd.AddCommand(feedsFetchCmd)

	feedsFetchCmd.Flags().IntVar(&feedsDays, "days", 7, "publication window in days")
	feedsFetchCmd.Flags().IntVar(&feedsMaxPerFeed, "max-per-feed", 15, "maximum articles per feed")
	feedsFetchCmd.Flags().DurationVar(&feedsTimeout, "timeout", 2*time.Minute, "total fetch timeout")
}
