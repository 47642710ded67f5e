package alert

import (
	"testing"

	"github.com/gojo-homes/api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func intPtr(i int) *int         { return &i }

// addisHouse is the canonical candidate: an active 3-bedroom house for sale
// in Addis Ababa at 1,500,000.
func addisHouse() *domain.Listing {
	return &domain.Listing{
		ListingID: "L1",
		Title:     "House in Bole",
		Type:      "house",
		Purpose:   domain.PurposeSale,
		Price:     f64Ptr(1500000),
		Status:    domain.ListingStatusActive,
		Location:  domain.Location{City: "Addis Ababa"},
		Specifications: domain.Specifications{
			Bedrooms: intPtr(3),
		},
	}
}

func TestMatches_EmptyCriteriaMatchesEverything(t *testing.T) {
	listings := []*domain.Listing{
		addisHouse(),
		{Type: "land", Purpose: domain.PurposeRent, Location: domain.Location{City: "Adama"}},
		{},
	}
	for _, l := range listings {
		assert.True(t, Matches(domain.SearchCriteria{}, l))
	}
}

func TestMatches_AllTypesSentinelBypassesTypeFilter(t *testing.T) {
	c := domain.SearchCriteria{Type: strPtr(domain.FilterAllTypes)}
	for _, typ := range []string{"house", "apartment", "land", "commercial"} {
		l := addisHouse()
		l.Type = typ
		assert.True(t, Matches(c, l), "type %s", typ)
	}
}

func TestMatches_AllListingsSentinelBypassesPurposeFilter(t *testing.T) {
	c := domain.SearchCriteria{Purpose: strPtr(domain.FilterAllListings)}
	for _, p := range []string{domain.PurposeSale, domain.PurposeRent} {
		l := addisHouse()
		l.Purpose = p
		assert.True(t, Matches(c, l), "purpose %s", p)
	}
}

func TestMatches_NilPriceSkipsPriceFilters(t *testing.T) {
	l := addisHouse()
	l.Price = nil
	c := domain.SearchCriteria{
		MinPrice: f64Ptr(1000000),
		MaxPrice: f64Ptr(2000000),
	}
	assert.True(t, Matches(c, l))
}

// Each sub-filter must fail the match on its own and pass when aligned.
// AND semantics, verified per dimension.
func TestMatches_ANDSemanticsPerDimension(t *testing.T) {
	tests := []struct {
		name    string
		failing domain.SearchCriteria
		passing domain.SearchCriteria
	}{
		{
			name:    "type",
			failing: domain.SearchCriteria{Type: strPtr("apartment")},
			passing: domain.SearchCriteria{Type: strPtr("house")},
		},
		{
			name:    "purpose",
			failing: domain.SearchCriteria{Purpose: strPtr(domain.PurposeRent)},
			passing: domain.SearchCriteria{Purpose: strPtr(domain.PurposeSale)},
		},
		{
			name:    "city",
			failing: domain.SearchCriteria{City: strPtr("hawassa")},
			passing: domain.SearchCriteria{City: strPtr("addis")},
		},
		{
			name:    "min price",
			failing: domain.SearchCriteria{MinPrice: f64Ptr(2000000)},
			passing: domain.SearchCriteria{MinPrice: f64Ptr(1000000)},
		},
		{
			name:    "max price",
			failing: domain.SearchCriteria{MaxPrice: f64Ptr(1000000)},
			passing: domain.SearchCriteria{MaxPrice: f64Ptr(2000000)},
		},
		{
			name:    "bedrooms",
			failing: domain.SearchCriteria{Bedrooms: strPtr("4")},
			passing: domain.SearchCriteria{Bedrooms: strPtr("2")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Matches(tt.failing, addisHouse()))
			assert.True(t, Matches(tt.passing, addisHouse()))
		})
	}
}

func TestMatches_CityIsCaseInsensitiveSubstring(t *testing.T) {
	c := domain.SearchCriteria{City: strPtr("ADDIS")}
	assert.True(t, Matches(c, addisHouse()))
}

func TestMatches_BedroomsDefaultToZeroWhenAbsent(t *testing.T) {
	l := addisHouse()
	l.Specifications.Bedrooms = nil

	assert.False(t, Matches(domain.SearchCriteria{Bedrooms: strPtr("1")}, l))
	assert.True(t, Matches(domain.SearchCriteria{Bedrooms: strPtr("0")}, l))
	assert.True(t, Matches(domain.SearchCriteria{Bedrooms: strPtr(domain.FilterAnyBedrooms)}, l))
}

func TestMatches_UnparseableBedroomFilterIsSkipped(t *testing.T) {
	c := domain.SearchCriteria{Bedrooms: strPtr("plenty")}
	assert.True(t, Matches(c, addisHouse()))
}

func TestMatches_Idempotent(t *testing.T) {
	c := domain.SearchCriteria{
		Type:     strPtr("house"),
		City:     strPtr("addis"),
		MinPrice: f64Ptr(1000000),
		Bedrooms: strPtr("2"),
	}
	l := addisHouse()
	first := Matches(c, l)
	second := Matches(c, l)
	assert.Equal(t, first, second)
	assert.True(t, first)
}

func TestMatches_AddisScenario(t *testing.T) {
	c := domain.SearchCriteria{
		Type:     strPtr("house"),
		City:     strPtr("addis"),
		MinPrice: f64Ptr(1000000),
		Bedrooms: strPtr("2"),
	}

	assert.True(t, Matches(c, addisHouse()))

	cheap := addisHouse()
	cheap.Price = f64Ptr(500000)
	assert.False(t, Matches(c, cheap))
}
