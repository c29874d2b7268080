package billing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"elysian/internal/entities"
)

func TestSlabLabel(t *testing.T) {
	assert.Equal(t, "12%", SlabLabel(7500))
	assert.Equal(t, "18%", SlabLabel(7500.01))
}

func TestLineItemsSkipZeroCategories(t *testing.T) {
	charges := entities.BillBreakdown{RoomCharges: 2000, FoodCharges: 0, ServiceCharges: 0}
	ApplyGST(&charges)

	items := LineItems(charges)
	labels := make([]string, 0, len(items))
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Equal(t, []string{"Room Charges", "Room GST (12%)"}, labels)
}

func TestLineItemsGSTLabels(t *testing.T) {
	charges := entities.BillBreakdown{RoomCharges: 9000, PackageCharges: 5000, FoodCharges: 400}
	ApplyGST(&charges)

	items := LineItems(charges)
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Contains(t, labels, "Room GST (18%)")
	assert.Contains(t, labels, "Package GST (12%)")
	assert.Contains(t, labels, "Food GST (5%)")
}

func TestShareText(t *testing.T) {
	charges := entities.BillBreakdown{RoomCharges: 3000, FoodCharges: 500}
	ApplyGST(&charges)
	summary := entities.BillSummary{
		GuestName:   "Asha Rao",
		RoomNumbers: []string{"101", "102"},
		StayNights:  2,
		CheckIn:     entities.NewDate(day("2024-06-01")),
		CheckOut:    entities.NewDate(day("2024-06-03")),
		Charges:     charges,
	}

	text := ShareText(summary, 100)
	assert.Contains(t, text, "Guest: Asha Rao")
	assert.Contains(t, text, "Room(s): 101, 102")
	assert.Contains(t, text, "Room Charges: 3000.00")
	assert.Contains(t, text, "Discount: -100.00")
	assert.Contains(t, text, "Grand Total: 3785.00")

	// Zero categories never appear.
	assert.False(t, strings.Contains(text, "Package"))
	assert.False(t, strings.Contains(text, "Service"))
}
