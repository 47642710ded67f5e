package alert

import (
	"strconv"
	"strings"

	"github.com/gojo-homes/api/internal/domain"
)

// Matches reports whether the listing satisfies every filter present in the
// criteria. A criteria with no filters set matches unconditionally. Each
// present filter must pass; absent filters and sentinel values are skipped.
//
// A listing without a comparable price passes the price-range filters rather
// than failing them, and a bedroom filter that cannot be parsed as a number
// is ignored. Pure predicate: no I/O, no mutation.
func Matches(c domain.SearchCriteria, l *domain.Listing) bool {
	if c.Type != nil && *c.Type != "" && *c.Type != domain.FilterAllTypes && *c.Type != l.Type {
		return false
	}
	if c.Purpose != nil && *c.Purpose != "" && *c.Purpose != domain.FilterAllListings && *c.Purpose != l.Purpose {
		return false
	}
	if c.City != nil && *c.City != "" &&
		!strings.Contains(strings.ToLower(l.Location.City), strings.ToLower(*c.City)) {
		return false
	}
	if l.Price != nil {
		if c.MinPrice != nil && *l.Price < *c.MinPrice {
			return false
		}
		if c.MaxPrice != nil && *l.Price > *c.MaxPrice {
			return false
		}
	}
	if c.Bedrooms != nil && *c.Bedrooms != domain.FilterAnyBedrooms {
		if min, err := strconv.Atoi(strings.TrimSpace(*c.Bedrooms)); err == nil {
			beds := 0
			if l.Specifications.Bedrooms != nil {
				beds = *l.Specifications.Bedrooms
			}
			if beds < min {
				return false
			}
		}
	}
	return true
}
