package chain

import (
	"encoding/hex"
	"strings"
)

// AddressLength is the size of an address or object id in bytes.
const AddressLength = 32

// NormalizeAddress returns the canonical form of an address or object id:
// lower-case, 0x-prefixed, left-padded to 64 hex digits. "0x2" becomes
// "0x0000…0002".
func NormalizeAddress(addr string) string {
	s := strings.ToLower(strings.TrimSpace(addr))
	s = strings.TrimPrefix(s, "0x")
	if len(s) < AddressLength*2 {
		s = strings.Repeat("0", AddressLength*2-len(s)) + s
	}
	return "0x" + s
}

// IsValidAddress reports whether addr is a hex address or object id of at
// most 32 bytes. The 0x prefix is optional.
func IsValidAddress(addr string) bool {
	s := strings.TrimPrefix(strings.TrimSpace(addr), "0x")
	s = strings.TrimPrefix(s, "0X")
	if s == "" || len(s) > AddressLength*2 {
		return false
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// NormalizeCoinType normalizes the address part of a coin type, so
// "0x2::sui::SUI" and its long form compare equal. Strings without a module
// path are returned trimmed.
func NormalizeCoinType(coinType string) string {
	s := strings.TrimSpace(coinType)
	addr, rest, ok := strings.Cut(s, "::")
	if !ok {
		return s
	}
	return NormalizeAddress(addr) + "::" + rest
}
