package service

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	bookingIDPrefix = "BK"
	packageIDPrefix = "PK"
)

// FormatBookingID renders the guest-facing booking reference, e.g. BK-000001.
func FormatBookingID(id int) string {
	return fmt.Sprintf("%s-%06d", bookingIDPrefix, id)
}

// FormatPackageBookingID renders the guest-facing package booking reference,
// e.g. PK-000001.
func FormatPackageBookingID(id int) string {
	return fmt.Sprintf("%s-%06d", packageIDPrefix, id)
}

// ParseDisplayID resolves a guest-facing reference back to its numeric id and
// whether it names a package booking. Bare numeric ids are accepted and taken
// as regular bookings.
func ParseDisplayID(displayID string) (id int, isPackage bool, err error) {
	ref := strings.ToUpper(strings.TrimSpace(displayID))
	if ref == "" {
		return 0, false, fmt.Errorf("empty booking reference")
	}

	switch {
	case strings.HasPrefix(ref, bookingIDPrefix+"-"):
		isPackage = false
		ref = strings.TrimPrefix(ref, bookingIDPrefix+"-")
	case strings.HasPrefix(ref, packageIDPrefix+"-"):
		isPackage = true
		ref = strings.TrimPrefix(ref, packageIDPrefix+"-")
	}

	id, err = strconv.Atoi(ref)
	if err != nil || id <= 0 {
		return 0, false, fmt.Errorf("invalid booking reference '%s'", displayID)
	}
	return id, isPackage, nil
}
