// Package wallet normalises the wallet identifiers players present to matchmaking.
//
// Identifiers are opaque to the rest of the system. The one exception is EVM-style
// addresses ("0x" followed by 40 hex digits): these are compared case-insensitively
// and always stored in their EIP-55 checksummed form, whatever case the client sent.
package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/mcoot/brewduel/internal/model"
)

const addressHexLength = 40

// Normalize trims a raw wallet identifier and returns its canonical form.
// Only an empty identifier is rejected.
func Normalize(raw string) (model.WalletID, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: walletId is required", model.ErrInvalidRequest)
	}

	if !IsAddress(id) {
		return model.WalletID(id), nil
	}
	return model.WalletID("0x" + checksumBody(strings.ToLower(id[2:]))), nil
}

// IsAddress reports whether id has the shape of an EVM address
func IsAddress(id string) bool {
	if len(id) != 2+addressHexLength || (id[:2] != "0x" && id[:2] != "0X") {
		return false
	}
	_, err := hex.DecodeString(id[2:])
	return err == nil
}

// Checksum returns the EIP-55 mixed-case form of an address
func Checksum(address string) (string, error) {
	if !IsAddress(address) {
		return "", fmt.Errorf("%w: %q is not an address", model.ErrInvalidRequest, address)
	}
	return "0x" + checksumBody(strings.ToLower(address[2:])), nil
}

// checksumBody applies EIP-55 casing to 40 lower-case hex digits
func checksumBody(lower string) string {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}
