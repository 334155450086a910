package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const DefaultLimit = 10

// allowedLimits restricts page sizes to the ones the dashboard offers.
// Anything else falls back to the default rather than erroring.
var allowedLimits = map[int]bool{10: true, 20: true, 50: true}

// Params holds pagination parameters extracted from a request.
type Params struct {
	Page  int
	Limit int
}

// FromContext extracts page/limit from the echo context. Limit is clamped
// to the allow-list, page to a minimum of 1; the upper page bound depends
// on the result size and is applied by Clamp.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if !allowedLimits[limit] {
		limit = DefaultLimit
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	return Params{Page: page, Limit: limit}
}

// Clamp constrains the requested page to [1, totalPages] for a result set
// of the given size and returns the effective page plus totalPages.
// totalPages is never below 1, so an empty result still reports page 1.
func (p Params) Clamp(total int) (page, totalPages int) {
	totalPages = (total + p.Limit - 1) / p.Limit
	if totalPages < 1 {
		totalPages = 1
	}
	page = p.Page
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

// Slice returns the [start, end) bounds of the clamped page within a
// result set of the given size.
func (p Params) Slice(total int) (start, end int) {
	page, _ := p.Clamp(total)
	start = (page - 1) * p.Limit
	end = start + p.Limit
	if end > total {
		end = total
	}
	return start, end
}

// Page describes the pagination envelope returned alongside list data.
type Page struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Response wraps a paginated API response.
type Response struct {
	Data       interface{} `json:"data"`
	Pagination Page        `json:"pagination"`
}

func NewResponse(data interface{}, p Params, total int) *Response {
	page, totalPages := p.Clamp(total)
	return &Response{
		Data: data,
		Pagination: Page{
			Page:       page,
			Limit:      p.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
