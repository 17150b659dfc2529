package order

import (
	"sort"
	"strings"
	"time"
)

type Filter string

const (
	FilterAll      Filter = "all"
	FilterToday    Filter = "today"
	FilterThisWeek Filter = "this_week"
)

// Projection computes the subset of orders to render. Filter and search
// compose as AND; the canonical list is never mutated.
type Projection struct {
	Filter Filter
	Search string
}

// ParseFilter maps a query parameter to a filter; a status name selects
// exact-status filtering, anything unknown falls back to all.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterAll, FilterToday, FilterThisWeek:
		return Filter(s)
	}
	if ValidStatus(Status(s)) {
		return Filter(s)
	}
	return FilterAll
}

// Apply returns the filtered, searched view, newest-first. now anchors the
// today/this_week windows so tests can pin the clock.
func (p Projection) Apply(orders []*Order, now time.Time) []*Order {
	query := strings.ToLower(strings.TrimSpace(p.Search))

	var out []*Order
	for _, o := range orders {
		if !p.matchFilter(o, now) {
			continue
		}
		if query != "" && !matchSearch(o, query) {
			continue
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (p Projection) matchFilter(o *Order, now time.Time) bool {
	switch p.Filter {
	case "", FilterAll:
		return true
	case FilterToday:
		y1, m1, d1 := o.CreatedAt.In(now.Location()).Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case FilterThisWeek:
		return o.CreatedAt.After(now.AddDate(0, 0, -7))
	default:
		return o.Status == Status(p.Filter)
	}
}

func matchSearch(o *Order, query string) bool {
	return strings.Contains(strings.ToLower(o.CustomerName), query) ||
		strings.Contains(o.PhoneNumber, query) ||
		strings.Contains(strings.ToLower(o.TrackingID), query) ||
		strings.Contains(strings.ToLower(o.ProductName), query)
}
