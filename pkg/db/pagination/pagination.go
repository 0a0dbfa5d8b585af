// Package pagination implements offset-token paging shared by list endpoints.
package pagination

import (
	"encoding/base64"
	"strconv"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

// Pagination binds the common list query parameters.
type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

// PageInfo is returned alongside list results.
type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	PageSize      int    `json:"page_size"`
}

// Limit clamps the requested page size into the allowed range.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// Offset decodes the page token. A malformed token reads as the first page.
func (p Pagination) Offset() int {
	if p.PageToken == "" {
		return 0
	}
	raw, err := base64.URLEncoding.DecodeString(p.PageToken)
	if err != nil {
		return 0
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// NextToken encodes the token for the page after the current one. It returns
// an empty token when the current page was not full.
func (p Pagination) NextToken(returned int) string {
	limit := p.Limit()
	if returned < limit {
		return ""
	}
	next := p.Offset() + limit
	return base64.URLEncoding.EncodeToString([]byte(strconv.Itoa(next)))
}
