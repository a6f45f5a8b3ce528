package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/interesting/flickr"
	"github.com/s0up4200/interesting/flickr/exec"
	"github.com/s0up4200/interesting/notify"
)

// useMockClient points the command globals at a mock-backed client and a
// recording notifier for the duration of the test
func useMockClient(t *testing.T, mock *flickr.MockService) *notify.Recorder {
	t.Helper()

	prevClient, prevNotifier, prevRequests := client, notifier, requests
	t.Cleanup(func() {
		client, notifier, requests = prevClient, prevNotifier, prevRequests
	})

	requests = exec.NewGo()
	c, err := flickr.NewClient(mock, zerolog.Nop(), flickr.WithExecutors(requests, exec.Sync))
	require.NoError(t, err)
	client = c

	recorder := notify.NewRecorder()
	notifier = notify.NewNotifier(recorder, zerolog.Nop())
	return recorder
}

func TestFetchPages(t *testing.T) {
	worker := exec.WithWorker(context.Background())

	tests := []struct {
		name      string
		first     int
		count     int
		failPage  int
		failure   flickr.Failure
		wantPages []int
		wantText  string
	}{
		{
			name:      "single page",
			first:     1,
			count:     1,
			wantPages: []int{1},
		},
		{
			name:     "single page network failure is shown",
			first:    1,
			count:    1,
			failPage: 1,
			failure:  &flickr.NetworkFailure{Cause: errors.New("Network Error")},
			wantText: "Network Error",
		},
		{
			name:      "several pages",
			first:     1,
			count:     2,
			wantPages: []int{1, flickr.Page2},
		},
		{
			name:     "several pages http failure is shown",
			first:    1,
			count:    3,
			failPage: 2,
			failure:  &flickr.HTTPFailure{StatusCode: 500, Message: "Internal Server Error"},
			wantText: notify.HTTPErrorText,
		},
		{
			name:     "several pages conversion failure is shown",
			first:    1,
			count:    2,
			failPage: 1,
			failure:  &flickr.ConversionFailure{Cause: &flickr.ConversionError{Message: "Conversion Error"}},
			wantText: "Conversion Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := flickr.NewMockService()
			if tt.failure != nil {
				mock.FailPage(tt.failPage, tt.failure)
			}
			recorder := useMockClient(t, mock)

			pages, err := fetchPages(worker, tt.first, tt.count, 5)
			require.NoError(t, err)

			if tt.failure != nil {
				assert.Nil(t, pages)
				assert.Equal(t, tt.wantText, recorder.LatestText())
				assert.Equal(t, 1, recorder.Count())
				return
			}

			require.Len(t, pages, len(tt.wantPages))
			for i, want := range tt.wantPages {
				assert.Equal(t, want, pages[i].Page)
			}
			assert.Zero(t, recorder.Count())
			assert.Len(t, mock.Calls(), tt.count)
		})
	}
}

func TestFetchPagesUnexpectedFailureCrashes(t *testing.T) {
	mock := flickr.NewMockService()
	mock.FailPage(2, &flickr.UnexpectedFailure{Cause: errors.New("Unknown Error")})
	recorder := useMockClient(t, mock)

	assert.PanicsWithError(t, "Unknown Error", func() {
		_, _ = fetchPages(exec.WithWorker(context.Background()), 1, 2, 5)
	})
	assert.Zero(t, recorder.Count())
}

func TestFetchPagesRefusesPrimaryContext(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"single page", 1},
		{"several pages", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := flickr.NewMockService()
			recorder := useMockClient(t, mock)

			pages, err := fetchPages(exec.WithPrimary(context.Background()), 1, tt.count, 5)
			assert.ErrorIs(t, err, flickr.ErrPrimaryContext)
			assert.Nil(t, pages)
			assert.Empty(t, mock.Calls())
			assert.Zero(t, recorder.Count())
		})
	}
}

func TestLoadPagesFromPrimaryContext(t *testing.T) {
	mock := flickr.NewMockService()
	useMockClient(t, mock)

	ctx := exec.WithPrimary(context.Background())
	pages, err := loadPages(ctx, 1, 2, 5)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 5, pages[0].Len())
	assert.True(t, pages[1].IsEmpty())
	assert.True(t, exec.IsPrimary(ctx), "caller context stays primary")
}

func TestRunPhotos(t *testing.T) {
	prevPage, prevCount, prevPerPage, prevFilter, prevURLs := page, pageCount, perPage, filterExpr, showURLs
	t.Cleanup(func() {
		page, pageCount, perPage, filterExpr, showURLs = prevPage, prevCount, prevPerPage, prevFilter, prevURLs
	})

	tests := []struct {
		name     string
		first    int
		count    int
		filter   string
		contains string
	}{
		{name: "first page", first: 1, count: 1, contains: "Page 1 of 1 (5 photos)"},
		{name: "past the end", first: flickr.Page2, count: 1, contains: "No photos found."},
		{name: "filtered out", first: 1, count: 2, filter: `Owner == "nobody"`, contains: "No photos found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useMockClient(t, flickr.NewMockService())
			page, pageCount, perPage, filterExpr, showURLs = tt.first, tt.count, 5, tt.filter, false

			var out bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&out)
			cmd.SetContext(context.Background())

			require.NoError(t, runPhotos(cmd, nil))
			assert.Contains(t, out.String(), tt.contains)
		})
	}
}
