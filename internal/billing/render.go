package billing

import (
	"fmt"
	"strings"

	"elysian/internal/entities"
)

// LineItem is one row of the rendered bill, shared by the on-screen summary,
// the emailed bill and the plain-text share message.
type LineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// SlabLabel is the display label for the room/package GST tier. It is derived
// from the charge amount, not stored; it reproduces the two-tier slab without
// recomputing the tax.
func SlabLabel(amount float64) string {
	if amount <= SlabThreshold {
		return "12%"
	}
	return "18%"
}

// FoodGSTLabel never varies.
const FoodGSTLabel = "5%"

// LineItems renders the breakdown into bill rows. Zero-amount categories are
// dropped and GST rows appear only when their value is positive.
func LineItems(charges entities.BillBreakdown) []LineItem {
	var items []LineItem
	if charges.RoomCharges > 0 {
		items = append(items, LineItem{"Room Charges", charges.RoomCharges})
	}
	if charges.PackageCharges > 0 {
		items = append(items, LineItem{"Package Charges", charges.PackageCharges})
	}
	if charges.FoodCharges > 0 {
		items = append(items, LineItem{"Food Charges", charges.FoodCharges})
	}
	if charges.ServiceCharges > 0 {
		items = append(items, LineItem{"Service Charges", charges.ServiceCharges})
	}
	if charges.RoomGST > 0 {
		items = append(items, LineItem{fmt.Sprintf("Room GST (%s)", SlabLabel(charges.RoomCharges)), charges.RoomGST})
	}
	if charges.PackageGST > 0 {
		items = append(items, LineItem{fmt.Sprintf("Package GST (%s)", SlabLabel(charges.PackageCharges)), charges.PackageGST})
	}
	if charges.FoodGST > 0 {
		items = append(items, LineItem{fmt.Sprintf("Food GST (%s)", FoodGSTLabel), charges.FoodGST})
	}
	return items
}

// ShareText renders the bill as the plain-text message sent over WhatsApp or
// pasted into an email body. One computation feeds every presentation target.
func ShareText(summary entities.BillSummary, discount float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Elysian Retreat - Bill Summary\n")
	fmt.Fprintf(&b, "Guest: %s\n", summary.GuestName)
	fmt.Fprintf(&b, "Room(s): %s\n", strings.Join(summary.RoomNumbers, ", "))
	fmt.Fprintf(&b, "Stay: %s to %s (%d night(s))\n\n",
		summary.CheckIn.Format("02 Jan 2006"), summary.CheckOut.Format("02 Jan 2006"), summary.StayNights)

	for _, item := range LineItems(summary.Charges) {
		fmt.Fprintf(&b, "%s: %.2f\n", item.Label, item.Amount)
	}
	if summary.Charges.TotalGST > 0 {
		fmt.Fprintf(&b, "Total GST: %.2f\n", summary.Charges.TotalGST)
	}
	if discount > 0 {
		fmt.Fprintf(&b, "Discount: -%.2f\n", discount)
	}
	fmt.Fprintf(&b, "\nGrand Total: %.2f\n", GrandTotal(summary.Charges, discount))
	fmt.Fprintf(&b, "Thank you for staying with us.\n")
	return b.String()
}
