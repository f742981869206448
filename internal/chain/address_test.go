package chain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddressPadsShortForm(t *testing.T) {
	got := NormalizeAddress("0x2")
	assert.Equal(t, "0x"+strings.Repeat("0", 63)+"2", got)
}

func TestNormalizeAddressLowercases(t *testing.T) {
	full := "0x" + strings.Repeat("AB", 32)
	assert.Equal(t, strings.ToLower(full), NormalizeAddress(full))
}

func TestNormalizeAddressWithoutPrefix(t *testing.T) {
	assert.Equal(t, NormalizeAddress("0x5"), NormalizeAddress("5"))
}

func TestIsValidAddress(t *testing.T) {
	valid := []string{"0x2", "0x" + strings.Repeat("a", 64), strings.Repeat("f", 64), "0xABC"}
	for _, a := range valid {
		assert.True(t, IsValidAddress(a), "%s should be valid", a)
	}

	invalid := []string{"", "0x", "0x" + strings.Repeat("a", 65), "0xzz", "hello"}
	for _, a := range invalid {
		assert.False(t, IsValidAddress(a), "%s should be invalid", a)
	}
}

func TestNormalizeCoinType(t *testing.T) {
	long := "0x" + strings.Repeat("0", 63) + "2::sui::SUI"
	assert.Equal(t, long, NormalizeCoinType("0x2::sui::SUI"))
	assert.Equal(t, long, NormalizeCoinType(" "+long+" "))
	assert.Equal(t, "garbage", NormalizeCoinType("garbage"))
}

func TestParseDigest(t *testing.T) {
	b, err := ParseDigest(digestA)
	require.NoError(t, err)
	assert.Len(t, b, DigestLength)
}

func TestParseDigestWrongLength(t *testing.T) {
	// 16 bytes of 0x01.
	_, err := ParseDigest("8C2kCzsB2fJy9MiZos1mS")
	assert.ErrorIs(t, err, ErrInvalidDigest)
}

func TestParseDigestNotBase58(t *testing.T) {
	_, err := ParseDigest("0OIl")
	assert.ErrorIs(t, err, ErrInvalidDigest)
}
