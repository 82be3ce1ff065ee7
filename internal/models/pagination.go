package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 50

	// MaxPage keeps (page-1)*MaxLimit inside int.
	MaxPage = math.MaxInt / MaxLimit
)

// PageRequest is a normalised page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest parses raw query values. Unparseable or zero values fall back
// to the defaults; the limit is clamped to [1, MaxLimit] and the page to
// [1, MaxPage].
func NewPageRequest(rawPage, rawLimit string) PageRequest {
	page, ok := ParseLeadingInt(rawPage)
	if !ok || page == 0 {
		page = DefaultPage
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}

	limit, ok := ParseLeadingInt(rawLimit)
	if !ok || limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasMore reports whether rows remain after a page that returned count rows.
func (p PageRequest) HasMore(count, total int) bool {
	return p.Offset()+count < total
}
