package orders

import (
	"strings"

	"github.com/somnath11som/webeF/internal/domain"
)

// StatusAll disables the status filter.
const StatusAll = "all"

// Filter keeps the orders whose id, customer or service contains search
// (case-insensitive) and whose status equals status. Both conditions must
// hold; an empty search or a status of "" or "all" matches everything.
func Filter(orders []domain.Order, search, status string) []domain.Order {
	needle := strings.ToLower(search)
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !matchesSearch(o, needle) {
			continue
		}
		if status != "" && status != StatusAll && string(o.Status) != status {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesSearch(o domain.Order, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.ID), needle) ||
		strings.Contains(strings.ToLower(o.Customer), needle) ||
		strings.Contains(strings.ToLower(o.Service), needle)
}
