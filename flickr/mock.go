package flickr

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Fixture pages served by MockService
const (
	// Page0 always yields a non-empty page
	Page0 = 0
	// Page2 always yields an empty page
	Page2 = 2
)

// mockPages is the number of pages holding photos. Like Flickr, page numbers
// below 1 are served as page 1 and pages past the end come back empty.
const mockPages = 1

// MockCall records one request seen by MockService
type MockCall struct {
	Page    int
	PerPage int
}

// MockService is a deterministic, in-memory Service. Responses are keyed by
// page and no network I/O is performed.
type MockService struct {
	mu       sync.Mutex
	failures map[int]Failure
	calls    []MockCall
}

var _ Service = (*MockService)(nil)

// NewMockService creates a mock transport with the default fixtures
func NewMockService() *MockService {
	return &MockService{failures: make(map[int]Failure)}
}

// FailPage makes every request for page fail with f
func (m *MockService) FailPage(page int, f Failure) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[page] = f
}

// Calls returns the requests seen so far
func (m *MockService) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// InterestingPhotos implements Service
func (m *MockService) InterestingPhotos(_ context.Context, page, perPage int) (*InterestingResponse, *Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Page: page, PerPage: perPage})
	f := m.failures[page]
	m.mu.Unlock()

	if f != nil {
		if hf, ok := f.(*HTTPFailure); ok {
			return nil, mockResponse(hf.StatusCode), f
		}
		return nil, nil, f
	}

	served := max(page, 1)

	var photos []Photo
	if served <= mockPages {
		photos = fixturePhotos(served, perPage)
	}

	return &InterestingResponse{
		Photos: NewPhotoPage(served, mockPages, perPage, mockPages*perPage, photos),
		Stat:   StatOK,
	}, mockResponse(http.StatusOK), nil
}

func fixturePhotos(page, perPage int) []Photo {
	photos := make([]Photo, 0, perPage)
	for i := 0; i < perPage; i++ {
		id := fmt.Sprintf("%d%04d", page+1, i)
		photos = append(photos, Photo{
			ID:       id,
			Owner:    fmt.Sprintf("owner%d@N0%d", i%7, page),
			Secret:   fmt.Sprintf("s%06x", i*7919+page),
			Server:   fmt.Sprintf("%d", 65535-i),
			Farm:     66,
			Title:    fmt.Sprintf("Interesting photo %d.%d", page, i),
			IsPublic: 1,
		})
	}
	return photos
}

func mockResponse(code int) *Response {
	return &Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     http.Header{"Content-Type": {"application/json"}},
	}
}
