package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"elysian/internal/entities"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGrandTotalClampsAtZero(t *testing.T) {
	charges := entities.BillBreakdown{TotalDue: 1000, TotalGST: 180}
	assert.Equal(t, 0.0, GrandTotal(charges, 5000))
	assert.Equal(t, 1180.0, GrandTotal(charges, 0))
	assert.Equal(t, 680.0, GrandTotal(charges, 500))
}

func TestGSTAdditivity(t *testing.T) {
	charges := entities.BillBreakdown{
		RoomCharges: 1000,
		FoodCharges: 500,
	}
	ApplyGST(&charges)
	assert.InDelta(t, 120.0, charges.RoomGST, 1e-9)
	assert.InDelta(t, 25.0, charges.FoodGST, 1e-9)
	assert.Equal(t, 0.0, charges.PackageGST)
	assert.InDelta(t, charges.RoomGST+charges.PackageGST+charges.FoodGST, charges.TotalGST, 1e-9)
}

func TestApplyGSTSlabs(t *testing.T) {
	tests := []struct {
		name    string
		charges entities.BillBreakdown
		roomGST float64
		pkgGST  float64
	}{
		{"room at threshold", entities.BillBreakdown{RoomCharges: 7500}, 900, 0},
		{"room above threshold", entities.BillBreakdown{RoomCharges: 7501}, 7501 * 0.18, 0},
		{"package lower slab", entities.BillBreakdown{PackageCharges: 5000}, 0, 600},
		{"package upper slab", entities.BillBreakdown{PackageCharges: 12000}, 0, 2160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ApplyGST(&tt.charges)
			assert.InDelta(t, tt.roomGST, tt.charges.RoomGST, 1e-9)
			assert.InDelta(t, tt.pkgGST, tt.charges.PackageGST, 1e-9)
		})
	}
}

func TestApplyGSTTotalDue(t *testing.T) {
	charges := entities.BillBreakdown{
		RoomCharges:    2000,
		FoodCharges:    300,
		ServiceCharges: 150,
		PackageCharges: 0,
	}
	ApplyGST(&charges)
	// Services contribute to the subtotal but carry no GST.
	assert.Equal(t, 2450.0, charges.TotalDue)
	assert.InDelta(t, 2000*0.12+300*0.05, charges.TotalGST, 1e-9)
}

func TestValidateDiscountBounds(t *testing.T) {
	charges := entities.BillBreakdown{TotalDue: 1000, TotalGST: 180}

	// Exactly the grand total is allowed and zeroes the bill.
	assert.NoError(t, ValidateDiscount(charges, 1180))
	assert.Equal(t, 0.0, GrandTotal(charges, 1180))

	// One unit more, and negatives, are rejected.
	err := ValidateDiscount(charges, 1181)
	assert.EqualError(t, err, "discount cannot exceed grand total")
	err = ValidateDiscount(charges, -1)
	assert.EqualError(t, err, "discount cannot be negative")
}

func TestEffectiveCheckout(t *testing.T) {
	booked := day("2024-05-10")
	assert.Equal(t, booked, EffectiveCheckout(day("2024-05-08"), booked))
	late := day("2024-05-12")
	assert.Equal(t, late, EffectiveCheckout(late, booked))
}

func TestStayNights(t *testing.T) {
	assert.Equal(t, 5, StayNights(day("2024-05-05"), day("2024-05-10")))
	assert.Equal(t, 1, StayNights(day("2024-05-05"), day("2024-05-05")))
	assert.Equal(t, 1, StayNights(day("2024-05-05"), day("2024-05-04")))
}

func TestRoomCharges(t *testing.T) {
	assert.Equal(t, 9000.0, RoomCharges([]float64{1500, 1500}, 3))
	assert.Equal(t, 0.0, RoomCharges(nil, 3))
}

func TestPackageCharges(t *testing.T) {
	// Whole property: flat price, regardless of rooms and nights.
	assert.Equal(t, 25000.0, PackageCharges(25000, true, 8, 3))
	// Room type: per room, per night.
	assert.Equal(t, 18000.0, PackageCharges(3000, false, 2, 3))
}
