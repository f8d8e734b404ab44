// Package pagination computes page/offset/sort parameters for collection
// queries. It is purely computational: the caller runs the window query and
// the independent full-collection count, then shapes the envelope itself.
package pagination

import "strconv"

// PerPage is the fixed page size for listing endpoints.
const PerPage = 10

// Params is the resolved query window for one listing request.
type Params struct {
	Page    int    // 1-based page number
	Limit   int    // Always PerPage
	Offset  int    // (Page-1) * PerPage
	OrderBy string // Whitelisted column, always sorted descending
}

// Resolve turns raw query values into Params. A missing, non-numeric, or
// non-positive page becomes page 1; there is no upper bound, a page beyond
// the data simply yields an empty window. The sort field is looked up in the
// sortable map (API name to column name) and falls back to defaultField when
// absent or unknown, so arbitrary client input never reaches the ORDER BY
// clause.
func Resolve(pageRaw, sortByRaw string, sortable map[string]string, defaultField string) Params {
	page := 1
	if pageRaw != "" {
		if parsed, err := strconv.Atoi(pageRaw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	orderBy, ok := sortable[sortByRaw]
	if !ok {
		orderBy = sortable[defaultField]
	}

	return Params{
		Page:    page,
		Limit:   PerPage,
		Offset:  (page - 1) * PerPage,
		OrderBy: orderBy,
	}
}
