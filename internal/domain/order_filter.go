package domain

import (
	"slices"
	"strconv"
	"strings"
)

// OrderFilter has AND semantics across fields, OR semantics within Statuses.
// The zero value matches every order.
type OrderFilter struct {
	Statuses []OrderStatus
	// Search matches the customer name (case-insensitive), a phone substring or an id substring.
	Search string
}

func (f OrderFilter) Matches(o Order) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status) {
		return false
	}

	term := f.SearchTerm()
	if term == "" {
		return true
	}

	return strings.Contains(strings.ToLower(o.CustomerName), strings.ToLower(term)) ||
		strings.Contains(o.PhoneNumber, term) ||
		strings.Contains(strconv.FormatInt(o.ID, 10), term)
}

func (f OrderFilter) SearchTerm() string {
	return strings.TrimSpace(f.Search)
}
