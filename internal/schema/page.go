package schema

import (
	"math"

	"blog-api/internal/domain"
	v "blog-api/internal/validation"
)

// DefaultLimit is the page size used when the query omits limit.
const DefaultLimit = "20"

// PageQuery validates ?page&limit into an offset/limit window.
func PageQuery(raw any) v.Result[domain.Page] {
	f := v.NewFields(raw)
	page := f.Int("page", "", v.Min(1, "Page's value must be at least 1"))
	limit := f.Int("limit", DefaultLimit,
		v.Min(5, "Limit's value must be at least 5"),
		v.Max(100, "Limit's value must be at most 100"),
		v.MultipleOf(5, "Limit must be a multiple of 5"),
	)
	f.Check("page", limit <= 0 || page-1 <= math.MaxInt/limit, "Page is out of range")
	return v.Finish(f, domain.Page{Offset: (page - 1) * limit, Limit: limit})
}
