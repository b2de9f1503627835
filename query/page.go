package query

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 9
)

// Page is a 1-based page window.
type Page struct {
	Number int
	Limit  int
}

// ParsePage coerces raw page/limit values, falling back to the defaults
// for anything non-numeric, zero or negative.
func ParsePage(pageStr, limitStr string) Page {
	p := Page{Number: DefaultPage, Limit: DefaultLimit}

	if pageStr != "" {
		if num, err := strconv.Atoi(pageStr); err == nil && num > 0 {
			p.Number = num
		}
	}
	if limitStr != "" {
		if num, err := strconv.Atoi(limitStr); err == nil && num > 0 {
			p.Limit = num
		}
	}

	return p
}

func (p Page) Skip() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages is ceil(total/limit), never less than 1 so an empty result
// still renders as one page.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}
