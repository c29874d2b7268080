package billing

import (
	"time"

	"elysian/internal/entities"
	apperrors "elysian/internal/errors"
)

// GST slabs. Room and package charges fall in a two-tier slab keyed on the
// charge amount; food is taxed flat. Services carry no GST.
const (
	SlabThreshold = 7500.0
	LowerSlabRate = 0.12
	UpperSlabRate = 0.18
	FoodGSTRate   = 0.05
)

// SlabRate returns the GST rate for a room or package charge amount.
func SlabRate(amount float64) float64 {
	if amount <= SlabThreshold {
		return LowerSlabRate
	}
	return UpperSlabRate
}

// ApplyGST fills the GST fields of a breakdown from its charge components
// and sums total_gst and total_due.
func ApplyGST(charges *entities.BillBreakdown) {
	charges.RoomGST = 0
	charges.PackageGST = 0
	charges.FoodGST = 0
	if charges.RoomCharges > 0 {
		charges.RoomGST = charges.RoomCharges * SlabRate(charges.RoomCharges)
	}
	if charges.PackageCharges > 0 {
		charges.PackageGST = charges.PackageCharges * SlabRate(charges.PackageCharges)
	}
	if charges.FoodCharges > 0 {
		charges.FoodGST = charges.FoodCharges * FoodGSTRate
	}
	charges.TotalGST = charges.RoomGST + charges.FoodGST + charges.PackageGST
	charges.TotalDue = charges.RoomCharges + charges.FoodCharges + charges.ServiceCharges + charges.PackageCharges
}

// GrandTotal computes the payable amount: subtotal plus GST minus discount,
// clamped at zero so no discount ever produces a negative bill.
func GrandTotal(charges entities.BillBreakdown, discount float64) float64 {
	total := charges.TotalDue + charges.TotalGST - discount
	if total < 0 {
		return 0
	}
	return total
}

// ValidateDiscount gates checkout submission. A discount may bring the bill
// to exactly zero but never below it.
func ValidateDiscount(charges entities.BillBreakdown, discount float64) error {
	if discount < 0 {
		return apperrors.ErrValidation("discount cannot be negative")
	}
	if discount > charges.TotalDue+charges.TotalGST {
		return apperrors.ErrValidation("discount cannot exceed grand total")
	}
	return nil
}

// EffectiveCheckout bills late departures through today while early
// departures still pay for the booked window.
func EffectiveCheckout(today, bookedCheckout time.Time) time.Time {
	if today.After(bookedCheckout) {
		return today
	}
	return bookedCheckout
}

// StayNights counts billable nights between check-in and the effective
// checkout, never fewer than one.
func StayNights(checkIn, effectiveCheckout time.Time) int {
	nights := int(effectiveCheckout.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

// RoomCharges prices a regular booking: per-room nightly rate times nights,
// summed over the billed rooms.
func RoomCharges(prices []float64, nights int) float64 {
	var total float64
	for _, p := range prices {
		total += p * float64(nights)
	}
	return total
}

// PackageCharges prices a package booking. Whole-property packages are a
// flat price for the stay; room-type packages price per room per night.
func PackageCharges(price float64, wholeProperty bool, roomCount, nights int) float64 {
	if wholeProperty {
		return price
	}
	return price * float64(roomCount) * float64(nights)
}
