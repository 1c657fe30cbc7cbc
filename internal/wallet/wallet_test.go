package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/brewduel/internal/model"
)

// Reference addresses from EIP-55
var checksummed = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
}

func TestChecksumMatchesReferenceAddresses(t *testing.T) {
	for _, addr := range checksummed {
		got, err := Checksum(strings.ToLower(addr))
		require.NoError(t, err)
		assert.Equal(t, addr, got)
	}
}

func TestNormalizeKeepsValidChecksum(t *testing.T) {
	for _, addr := range checksummed {
		id, err := Normalize(addr)
		require.NoError(t, err)
		assert.Equal(t, model.WalletID(addr), id)
	}
}

func TestNormalizeChecksumsSingleCaseAddresses(t *testing.T) {
	lower := strings.ToLower(checksummed[0])
	upper := "0X" + strings.ToUpper(lower[2:])

	for _, raw := range []string{lower, upper, "  " + lower + "\n"} {
		id, err := Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, model.WalletID(checksummed[0]), id, raw)
	}
}

func TestNormalizeAcceptsBadChecksum(t *testing.T) {
	// One letter's case flipped; still the same address
	bad := "0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	id, err := Normalize(bad)
	require.NoError(t, err)
	assert.Equal(t, model.WalletID(checksummed[0]), id)
}

func TestNormalizeOpaqueIdentifiers(t *testing.T) {
	id, err := Normalize("  alice.eth  ")
	require.NoError(t, err)
	assert.Equal(t, model.WalletID("alice.eth"), id)

	// Not 40 hex digits, so it stays opaque and keeps its case
	id, err = Normalize("0xABC")
	require.NoError(t, err)
	assert.Equal(t, model.WalletID("0xABC"), id)

	long := strings.Repeat("a", 1000)
	id, err = Normalize(long)
	require.NoError(t, err)
	assert.Equal(t, model.WalletID(long), id)
}

func TestNormalizeRejectsEmpty(t *testing.T) {
	_, err := Normalize("")
	assert.ErrorIs(t, err, model.ErrInvalidRequest)

	_, err = Normalize("   ")
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
}
