package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/interesting/filter"
	"github.com/s0up4200/interesting/flickr"
	"github.com/s0up4200/interesting/flickr/exec"
)

var (
	page       int
	pageCount  int
	perPage    int
	filterExpr string
	showURLs   bool
	urlSize    string
)

// photosCmd represents the photos command
var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "List interesting photos",
	Long: `List one or more pages of Flickr's interesting photos.

Filter expressions can use the fields ID, Owner, Title, Server, Farm,
Public, Friend, Family and URL, and the helpers ownedBy, contains,
startsWith, endsWith, lower and upper:

  interesting photos --filter 'Public && contains(Title, "sunset")'`,
	RunE: runPhotos,
}

func init() {
	photosCmd.Flags().IntVarP(&page, "page", "p", 1, "first page to fetch")
	photosCmd.Flags().IntVarP(&pageCount, "pages", "n", 1, "number of pages to fetch")
	photosCmd.Flags().IntVar(&perPage, "per-page", 0, "photos per page (default from config)")
	photosCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	photosCmd.Flags().BoolVar(&showURLs, "urls", false, "print image URLs")
	photosCmd.Flags().StringVar(&urlSize, "size", flickr.SizeMedium, "image size suffix for --urls (s, t, m, z, b)")
}

func runPhotos(cmd *cobra.Command, args []string) error {
	if pageCount < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}
	if perPage <= 0 {
		perPage = cfg.Flickr.PerPage
	}

	var photoFilter *filter.PhotoFilter
	if filterExpr != "" {
		var err error
		photoFilter, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	// The command goroutine drives the terminal and must not block on I/O
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = exec.WithPrimary(ctx)

	pages, err := loadPages(ctx, page, pageCount, perPage)
	if err != nil || pages == nil {
		return err
	}

	out := cmd.OutOrStdout()
	var total int
	for _, p := range pages {
		total += printPage(out, p, photoFilter)
	}

	if total == 0 {
		fmt.Fprintln(out, "No photos found.")
	}
	return nil
}

// loadPages runs fetchPages on a worker goroutine and waits for its result
func loadPages(ctx context.Context, first, count, size int) ([]*flickr.PhotoPage, error) {
	var (
		pages []*flickr.PhotoPage
		err   error
	)
	worker := exec.NewGo()
	worker.Execute(func() {
		pages, err = fetchPages(exec.WithWorker(ctx), first, count, size)
	})
	worker.Wait()
	return pages, err
}

// fetchPages returns the requested pages. It returns nil pages and a nil
// error when a failure has already been shown to the user.
func fetchPages(ctx context.Context, first, count, size int) ([]*flickr.PhotoPage, error) {
	if count == 1 {
		var result *flickr.PhotoPage
		err := client.GetInterestingPhotos(ctx, first, size, notifier.Callback(func(p *flickr.PhotoPage, _ *flickr.Response) {
			result = p
		}))
		if err != nil {
			return nil, err
		}
		requests.Wait()
		if result == nil {
			return nil, nil
		}
		return []*flickr.PhotoPage{result}, nil
	}

	numbers := make([]int, count)
	for i := range numbers {
		numbers[i] = first + i
	}

	pages, err := client.FetchPages(ctx, numbers, size)
	if err != nil {
		var f flickr.Failure
		if errors.As(err, &f) {
			notifier.MustNotify(f)
			return nil, nil
		}
		return nil, err
	}
	return pages, nil
}

func printPage(out io.Writer, p *flickr.PhotoPage, f *filter.PhotoFilter) int {
	photos := f.Apply(p)
	if len(photos) == 0 {
		return 0
	}

	fmt.Fprintf(out, "\nPage %d of %d (%d photos):\n", p.Page, p.Pages, len(photos))
	fmt.Fprintln(out, strings.Repeat("-", 80))

	for _, photo := range photos {
		title := photo.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(out, "• %s [%s] by %s\n", title, photo.ID, photo.Owner)
		if showURLs {
			fmt.Fprintf(out, "  %s\n", photo.URL(urlSize))
		}
	}
	return len(photos)
}
