package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dentacare/dentacare/internal/platform/apperr"
)

const (
	DefaultPage = 1
	MaxLimit    = 100
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Page  int
	Limit int
}

// FromContext extracts page/limit from the echo context. page defaults to 1,
// limit to defaultLimit. An explicit limit that is zero, negative, or not a
// number is rejected.
func FromContext(c echo.Context, defaultLimit int) (Params, error) {
	p := Params{Page: DefaultPage, Limit: defaultLimit}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Params{}, apperr.New(apperr.BadRequest, "page must be a positive integer")
		}
		p.Page = page
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return Params{}, apperr.New(apperr.BadRequest, "limit must be a positive integer")
		}
		p.Limit = limit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	return p, nil
}

// Offset returns the SQL offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block returned alongside list items.
type Meta struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// NewMeta computes the pagination block for a total row count.
func NewMeta(total int, p Params) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{
		CurrentPage:  p.Page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: p.Limit,
	}
}

// Page wraps a page of items with its pagination block.
type Page struct {
	Items      interface{} `json:"items"`
	Pagination Meta        `json:"pagination"`
}

// NewPage builds the list payload for a page of items.
func NewPage(items interface{}, total int, p Params) *Page {
	return &Page{Items: items, Pagination: NewMeta(total, p)}
}
