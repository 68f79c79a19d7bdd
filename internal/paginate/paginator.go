// Package paginate computes a shared page cursor over two independently
// sized ranked lists. Both columns use the same fixed page size and the same
// 1-based page number, so their page boundaries are always aligned by page,
// not by absolute result count.
package paginate

import (
	"encoding/json"

	"github.com/hyperjump/kurabe/pkg/utils"
)

// DefaultPageSize is the column window used when none is configured.
const DefaultPageSize = 4

// Pager slices two parallel lists into fixed-size column windows.
type Pager struct {
	pageSize int
}

// NewPager returns a pager with the given column page size; sizes below 1
// fall back to DefaultPageSize.
func NewPager(pageSize int) *Pager {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Pager{pageSize: pageSize}
}

// PageSize returns the column window size.
func (p *Pager) PageSize() int { return p.pageSize }

// TotalPages returns the page count covering the longer of the two lists.
// Two empty lists still occupy one (empty) page.
func (p *Pager) TotalPages(lenA, lenB int) int {
	longest := lenA
	if lenB > longest {
		longest = lenB
	}
	if longest == 0 {
		return 1
	}
	return utils.CeilDiv(longest, p.pageSize)
}

// Clamp forces page into [1, TotalPages(lenA, lenB)]. It never wraps.
func (p *Pager) Clamp(page, lenA, lenB int) int {
	if page < 1 {
		return 1
	}
	if total := p.TotalPages(lenA, lenB); page > total {
		return total
	}
	return page
}

// Bounds returns the half-open slice window [lo, hi) for the given 1-based
// page over a list of length n.
func (p *Pager) Bounds(page, n int) (lo, hi int) {
	lo = (page - 1) * p.pageSize
	hi = lo + p.pageSize
	if lo > n {
		lo = n
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}

// RealIndex converts a 0-based index within a page to the 1-based global
// display position.
func (p *Pager) RealIndex(page, local int) int {
	return (page-1)*p.pageSize + local + 1
}

// Item is one entry of the page-number control: either a concrete page or an
// ellipsis gap.
type Item struct {
	Page int
	Gap  bool
}

// MarshalJSON encodes a page number as a JSON number and a gap as the string
// "ellipsis", matching what the view layer consumes.
func (it Item) MarshalJSON() ([]byte, error) {
	if it.Gap {
		return json.Marshal("ellipsis")
	}
	return json.Marshal(it.Page)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (it *Item) UnmarshalJSON(data []byte) error {
	var page int
	if err := json.Unmarshal(data, &page); err == nil {
		*it = Item{Page: page}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*it = Item{Gap: true}
	return nil
}

var gap = Item{Gap: true}

// PageNumbers lays out the page-number control for the given current page
// and total page count: at most seven slots, with ellipsis gaps once total
// exceeds seven.
func PageNumbers(current, total int) []Item {
	if total <= 7 {
		items := make([]Item, 0, total)
		for n := 1; n <= total; n++ {
			items = append(items, Item{Page: n})
		}
		return items
	}
	switch {
	case current <= 3:
		return []Item{{Page: 1}, {Page: 2}, {Page: 3}, {Page: 4}, gap, {Page: total}}
	case current >= total-2:
		return []Item{{Page: 1}, gap, {Page: total - 3}, {Page: total - 2}, {Page: total - 1}, {Page: total}}
	default:
		return []Item{{Page: 1}, gap, {Page: current - 1}, {Page: current}, {Page: current + 1}, gap, {Page: total}}
	}
}
