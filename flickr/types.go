package flickr

import (
	"fmt"
	"net/http"
)

// Photo size suffixes understood by the Flickr static image host
const (
	SizeSquare = "s"
	SizeThumb  = "t"
	SizeSmall  = "m"
	SizeMedium = "z"
	SizeLarge  = "b"
)

const staticHostFmt = "https://live.staticflickr.com/%s/%s_%s_%s.jpg"

// Photo represents a single photo record from the interestingness list
type Photo struct {
	ID       string `json:"id"`
	Owner    string `json:"owner"`
	Secret   string `json:"secret"`
	Server   string `json:"server"`
	Farm     int    `json:"farm"`
	Title    string `json:"title"`
	IsPublic int    `json:"ispublic"`
	IsFriend int    `json:"isfriend"`
	IsFamily int    `json:"isfamily"`
}

// URL returns the static image URL for the given size suffix
func (p Photo) URL(size string) string {
	if size == "" {
		size = SizeMedium
	}
	return fmt.Sprintf(staticHostFmt, p.Server, p.ID, p.Secret, size)
}

// Public reports whether the photo is visible to everyone
func (p Photo) Public() bool {
	return p.IsPublic == 1
}

// PhotoPage is one page of interesting photos. It may be empty.
type PhotoPage struct {
	Page    int     `json:"page"`
	Pages   int     `json:"pages"`
	PerPage int     `json:"perpage"`
	Total   int     `json:"total"`
	Photos  []Photo `json:"photo"`
}

// NewPhotoPage builds a page holding its own copy of photos
func NewPhotoPage(page, pages, perPage, total int, photos []Photo) *PhotoPage {
	return &PhotoPage{
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		Total:   total,
		Photos:  append([]Photo(nil), photos...),
	}
}

// Len returns the number of photos on the page
func (p *PhotoPage) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Photos)
}

// IsEmpty reports whether the page holds no photos
func (p *PhotoPage) IsEmpty() bool {
	return p.Len() == 0
}

// List returns a copy of the photos on the page
func (p *PhotoPage) List() []Photo {
	if p == nil {
		return nil
	}
	return append([]Photo(nil), p.Photos...)
}

// HasMorePages checks if there are more pages after this one
func (p *PhotoPage) HasMorePages() bool {
	return p != nil && p.Page < p.Pages
}

// InterestingResponse is the envelope returned by flickr.interestingness.getList
type InterestingResponse struct {
	Photos  *PhotoPage `json:"photos"`
	Stat    string     `json:"stat"`
	Code    int        `json:"code,omitempty"`
	Message string     `json:"message,omitempty"`
}

// OK reports whether Flickr accepted the call
func (r *InterestingResponse) OK() bool {
	return r != nil && r.Stat == StatOK
}

// Response carries transport metadata for a completed call.
// It is passed through to callbacks and never interpreted.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
}

// Stat values reported by the Flickr REST API
const (
	StatOK   = "ok"
	StatFail = "fail"
)
