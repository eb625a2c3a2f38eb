package services

import (
	"testing"
	"time"

	"property-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func uintPtr(v uint) *uint { return &v }

func testUnit() *models.Unit {
	u := &models.Unit{
		Name:      "Sea View 1",
		Type:      "apartment",
		BasePrice: 50,
	}
	u.ID = 7
	return u
}

func TestResolveNightlyPrice_BaseRateFallback(t *testing.T) {
	unit := testUnit()

	price, source := ResolveNightlyPrice(unit, date("2024-07-01"), nil)
	assert.Equal(t, 50.0, price)
	assert.Equal(t, SourceBaseRate, source)

	// rules exist but none cover the night or the unit
	rules := []models.PricingRule{
		{UnitID: uintPtr(99), StartDate: date("2024-07-01"), EndDate: date("2024-07-10"), Price: 80},
		{UnitType: "suite", StartDate: date("2024-07-01"), EndDate: date("2024-07-10"), Price: 90},
		{UnitID: uintPtr(7), StartDate: date("2024-08-01"), EndDate: date("2024-08-10"), Price: 120},
	}
	price, source = ResolveNightlyPrice(unit, date("2024-07-01"), rules)
	assert.Equal(t, 50.0, price)
	assert.Equal(t, SourceBaseRate, source)
}

func TestResolveNightlyPrice_UnitBeatsType(t *testing.T) {
	unit := testUnit()

	// type rule created later than the unit rule; unit scope still wins
	rules := []models.PricingRule{
		{ID: 1, UnitID: uintPtr(7), StartDate: date("2024-07-01"), EndDate: date("2024-07-05"), Price: 80,
			CreatedAt: date("2024-01-01")},
		{ID: 2, UnitType: "apartment", StartDate: date("2024-07-01"), EndDate: date("2024-07-05"), Price: 60,
			CreatedAt: date("2024-06-01")},
	}

	price, source := ResolveNightlyPrice(unit, date("2024-07-02"), rules)
	assert.Equal(t, 80.0, price)
	assert.Equal(t, SourceUnitOverride, source)
}

func TestResolveNightlyPrice_LatestCreatedWins(t *testing.T) {
	unit := testUnit()

	rules := []models.PricingRule{
		{ID: 1, UnitID: uintPtr(7), StartDate: date("2024-07-01"), EndDate: date("2024-07-05"), Price: 80,
			CreatedAt: date("2024-01-01")},
		{ID: 2, UnitID: uintPtr(7), StartDate: date("2024-07-01"), EndDate: date("2024-07-05"), Price: 95,
			CreatedAt: date("2024-03-01")},
	}

	price, _ := ResolveNightlyPrice(unit, date("2024-07-03"), rules)
	assert.Equal(t, 95.0, price)

	// order independence
	price, _ = ResolveNightlyPrice(unit, date("2024-07-03"), []models.PricingRule{rules[1], rules[0]})
	assert.Equal(t, 95.0, price)
}

func TestResolveNightlyPrice_EqualTimestampTieBreaksOnID(t *testing.T) {
	unit := testUnit()
	created := date("2024-02-02")

	rules := []models.PricingRule{
		{ID: 10, UnitType: "apartment", StartDate: date("2024-07-01"), EndDate: date("2024-07-05"), Price: 61, CreatedAt: created},
		{ID: 11, UnitType: "apartment", StartDate: date("2024-07-01"), EndDate: date("2024-07-05"), Price: 62, CreatedAt: created},
	}

	price, source := ResolveNightlyPrice(unit, date("2024-07-02"), rules)
	assert.Equal(t, 62.0, price)
	assert.Equal(t, SourceTypeOverride, source)

	price, _ = ResolveNightlyPrice(unit, date("2024-07-02"), []models.PricingRule{rules[1], rules[0]})
	assert.Equal(t, 62.0, price)
}

func TestComputeStayTotal_InvalidRange(t *testing.T) {
	unit := testUnit()

	_, err := ComputeStayTotal(unit, date("2024-07-04"), date("2024-07-04"), nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = ComputeStayTotal(unit, date("2024-07-04"), date("2024-07-01"), nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

// Scenario from the booking flow: base price 50, a unit rule of 80 on
// 2024-07-01..03 inclusive, and a type rule of 60 on 2024-07-01..10, staying
// 06-30 to 07-04.
func TestPricing_OverrideScenario(t *testing.T) {
	unit := testUnit()
	rules := []models.PricingRule{
		{ID: 1, UnitID: uintPtr(7), StartDate: date("2024-07-01"), EndDate: date("2024-07-03"), Price: 80,
			CreatedAt: date("2024-05-01")},
		{ID: 2, UnitType: "apartment", StartDate: date("2024-07-01"), EndDate: date("2024-07-10"), Price: 60,
			CreatedAt: date("2024-05-02")},
	}

	checkIn := date("2024-06-30")
	checkOut := date("2024-07-04")

	nights := NightlyPrices(unit, checkIn, checkOut, rules)
	require.Len(t, nights, 4)
	assert.Equal(t, 50.0, nights[0].Price)
	assert.Equal(t, SourceBaseRate, nights[0].Source)
	for _, n := range nights[1:] {
		assert.Equal(t, 80.0, n.Price)
		assert.Equal(t, SourceUnitOverride, n.Source)
	}

	total, err := ComputeStayTotal(unit, checkIn, checkOut, rules)
	require.NoError(t, err)
	assert.Equal(t, 290.0, total)

	groups := BuildBreakdown(unit, checkIn, checkOut, rules)
	require.Len(t, groups, 2)

	assert.Equal(t, SourceBaseRate, groups[0].Source)
	assert.Equal(t, 1, groups[0].Nights)
	assert.Equal(t, 50.0, groups[0].Subtotal)
	assert.Equal(t, "2024-06-30", groups[0].StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-06-30", groups[0].EndDate.Format("2006-01-02"))

	assert.Equal(t, SourceUnitOverride, groups[1].Source)
	assert.Equal(t, 3, groups[1].Nights)
	assert.Equal(t, 240.0, groups[1].Subtotal)
	assert.Equal(t, "2024-07-01", groups[1].StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-07-03", groups[1].EndDate.Format("2006-01-02"))
}

// The grouped subtotals must always reconcile with the computed stay total.
func TestBreakdown_ReconcilesWithStayTotal(t *testing.T) {
	unit := testUnit()

	cases := []struct {
		name  string
		rules []models.PricingRule
	}{
		{"no rules", nil},
		{"single unit rule", []models.PricingRule{
			{ID: 1, UnitID: uintPtr(7), StartDate: date("2024-07-02"), EndDate: date("2024-07-04"), Price: 75, CreatedAt: date("2024-05-01")},
		}},
		{"alternating rules", []models.PricingRule{
			{ID: 1, UnitID: uintPtr(7), StartDate: date("2024-07-01"), EndDate: date("2024-07-01"), Price: 70, CreatedAt: date("2024-05-01")},
			{ID: 2, UnitID: uintPtr(7), StartDate: date("2024-07-03"), EndDate: date("2024-07-03"), Price: 70, CreatedAt: date("2024-05-01")},
			{ID: 3, UnitType: "apartment", StartDate: date("2024-06-28"), EndDate: date("2024-07-10"), Price: 55, CreatedAt: date("2024-05-03")},
		}},
	}

	checkIn := date("2024-06-29")
	checkOut := date("2024-07-06")

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total, err := ComputeStayTotal(unit, checkIn, checkOut, tc.rules)
			require.NoError(t, err)

			var grouped float64
			nightCount := 0
			for _, g := range BuildBreakdown(unit, checkIn, checkOut, tc.rules) {
				grouped += g.Subtotal
				nightCount += g.Nights
			}
			assert.InDelta(t, total, grouped, 1e-9)
			assert.Equal(t, 7, nightCount)
		})
	}
}

func TestBuildBreakdown_SamePriceDifferentSourceSplits(t *testing.T) {
	unit := testUnit()

	// type rule at the same price as base: price is equal but source changes,
	// so the run must split.
	rules := []models.PricingRule{
		{ID: 1, UnitType: "apartment", StartDate: date("2024-07-02"), EndDate: date("2024-07-03"), Price: 50, CreatedAt: date("2024-05-01")},
	}

	groups := BuildBreakdown(unit, date("2024-07-01"), date("2024-07-05"), rules)
	require.Len(t, groups, 3)
	assert.Equal(t, SourceBaseRate, groups[0].Source)
	assert.Equal(t, SourceTypeOverride, groups[1].Source)
	assert.Equal(t, SourceBaseRate, groups[2].Source)
}
