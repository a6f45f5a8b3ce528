package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/interesting/flickr/exec"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to Flickr",
	Long:  `Fetch a single photo from the interestingness list to check the API key and connectivity.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to Flickr at %s...\n", cfg.Flickr.Endpoint)

	ctx := exec.WithWorker(context.Background())
	pages, err := client.FetchPages(ctx, []int{1}, 1)
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Connection successful!")
	fmt.Fprintf(out, "- Interesting photos today: %d\n", pages[0].Total)
	fmt.Fprintf(out, "- Pages at %d per page: %d\n", cfg.Flickr.PerPage, (pages[0].Total+cfg.Flickr.PerPage-1)/cfg.Flickr.PerPage)
	return nil
}
