// Package pagination bounds list endpoint page sizes per listing.
package pagination

import (
	"math"
	"strconv"

	"movie-catalog/internal/apperror"
)

// Policy is the default and maximum page size of one listing.
type Policy struct {
	PageSize    int
	MaxPageSize int
}

var (
	Movie    = Policy{PageSize: 5, MaxPageSize: 10}
	Category = Policy{PageSize: 4, MaxPageSize: 10}
	Country  = Policy{PageSize: 6, MaxPageSize: 10}
	Default  = Policy{PageSize: 20, MaxPageSize: 100}
)

// Request is a resolved page request.
type Request struct {
	Page int
	Size int
}

func (r Request) Offset() int {
	return (r.Page - 1) * r.Size
}

// Resolve reads the raw page and page_size query values. An unusable
// page_size falls back to the default and an oversized one is clamped to the
// cap. An unusable page number is NotFound.
func (p Policy) Resolve(rawPage, rawSize string) (Request, error) {
	size := p.PageSize
	if rawSize != "" {
		if n, err := strconv.Atoi(rawSize); err == nil && n > 0 {
			size = min(n, p.MaxPageSize)
		}
	}

	page := 1
	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		// The offset of every valid page fits in an int.
		if err != nil || n < 1 || n-1 > math.MaxInt/size {
			return Request{}, apperror.NotFound("Invalid page.")
		}
		page = n
	}

	return Request{Page: page, Size: size}, nil
}

// Check rejects a page past the last one. The first page always exists, even
// for an empty listing.
func (r Request) Check(total int64) error {
	if r.Page == 1 {
		return nil
	}
	if int64(r.Offset()) >= total {
		return apperror.NotFound("Invalid page.")
	}
	return nil
}
