package pagination

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

const (
	// DefaultLimit is the page size when none is requested
	DefaultLimit = 20
	// MaxLimit caps the requested page size
	MaxLimit = 100
	// MaxPage keeps (page-1)*limit within int range
	MaxPage = math.MaxInt / MaxLimit
)

// Params is a page request resolved from the query string
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Meta describes where a page sits in the full result
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Response is a page of items with its metadata
type Response struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta"`
}

// GetParams reads ?page= and ?limit=. Invalid or missing values fall back
// to page 1 and DefaultLimit; limit is capped at MaxLimit and page at MaxPage.
func GetParams(c *fiber.Ctx) *Params {
	page := c.QueryInt("page", 1)
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}

	limit := c.QueryInt("limit", DefaultLimit)
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return &Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// GetMeta computes page counts for total items
func GetMeta(params *Params, total int64) *Meta {
	limit := int64(params.Limit)
	totalPages := int((total + limit - 1) / limit)

	return &Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// NewResponse wraps one page of data
func NewResponse(data interface{}, params *Params, total int64) *Response {
	return &Response{Data: data, Meta: GetMeta(params, total)}
}
