package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBookingIDs(t *testing.T) {
	assert.Equal(t, "BK-000001", FormatBookingID(1))
	assert.Equal(t, "BK-012345", FormatBookingID(12345))
	assert.Equal(t, "PK-000042", FormatPackageBookingID(42))
}

func TestParseDisplayID(t *testing.T) {
	id, isPackage, err := ParseDisplayID("BK-000001")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.False(t, isPackage)

	id, isPackage, err = ParseDisplayID("PK-000042")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.True(t, isPackage)
}

func TestParseDisplayIDIsCaseAndSpaceTolerant(t *testing.T) {
	id, isPackage, err := ParseDisplayID("  pk-000007 ")
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.True(t, isPackage)
}

func TestParseDisplayIDAcceptsBareNumeric(t *testing.T) {
	id, isPackage, err := ParseDisplayID("15")
	require.NoError(t, err)
	assert.Equal(t, 15, id)
	assert.False(t, isPackage)
}

func TestParseDisplayIDRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "BK-", "BK-abc", "XX-000001", "BK-000000", "-3"} {
		_, _, err := ParseDisplayID(input)
		assert.Error(t, err, "input %q", input)
	}
}
