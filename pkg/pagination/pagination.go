// Package pagination computes the compact, ellipsis-abbreviated list of
// page numbers an admin table shows for a larger page range.
package pagination

// Item is one slot in a pagination window: either a concrete page number
// or an ellipsis placeholder.
type Item struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// DefaultVisibleSpan is the number of pages kept visible around the
// current page.
const DefaultVisibleSpan = 3

func page(n int) Item { return Item{Page: n} }

var ellipsis = Item{Ellipsis: true}

// Plan computes the page-index window for the given current page out of
// total pages. The first and last page stay visible; the window pads
// symmetrically around current, clamped at both boundaries. Pure and
// deterministic: the same inputs always produce the same output.
func Plan(current, total int, visibleSpan ...int) []Item {
	span := DefaultVisibleSpan
	if len(visibleSpan) > 0 && visibleSpan[0] > 0 {
		span = visibleSpan[0]
	}
	if total < 1 {
		return nil
	}

	// Small ranges need no abbreviation.
	if total <= span+4 {
		items := make([]Item, total)
		for i := range items {
			items[i] = page(i + 1)
		}
		return items
	}

	half := span / 2
	start := current - half
	if start < 2 {
		start = 2
	}
	end := current + half
	if end > total-1 {
		end = total - 1
	}

	items := []Item{page(1)}
	if start > 2 {
		items = append(items, ellipsis)
	}
	for p := start; p <= end; p++ {
		items = append(items, page(p))
	}
	if end < total-1 {
		items = append(items, ellipsis)
	}
	return append(items, page(total))
}

// TotalPages returns how many pages a result set of the given size spans.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
