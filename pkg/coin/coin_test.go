package coin

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/blindcoin/pkg/primitives"
)

var (
	guidPattern = regexp.MustCompile(`^[0-9a-f]{96}$`)
	hashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// requireCoinLayout checks s field by field against the canonical coin layout.
func requireCoinLayout(t *testing.T, s, amount string, shares int) {
	t.Helper()

	parts := strings.Split(s, "-")
	require.Len(t, parts, 5, "coin %q", s)
	assert.Equal(t, BankMarker, parts[0])
	assert.Equal(t, amount, parts[1])
	assert.Regexp(t, guidPattern, parts[2])

	for _, side := range parts[3:] {
		hashes := strings.Split(side, ",")
		require.Len(t, hashes, shares)
		for _, h := range hashes {
			assert.Regexp(t, hashPattern, h)
		}
	}
}

func xor(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func TestNew_AliceScenario(t *testing.T) {
	_, pub := loadTestKey(t)

	b, err := New("alice", 10, pub.N, pub.E)
	require.NoError(t, err)

	left, err := b.IdentityShare(true, 0)
	require.NoError(t, err)
	right, err := b.IdentityShare(false, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("IDENT:alice"), xor(left, right))

	s := b.String()
	assert.True(t, strings.HasPrefix(s, "ELECTRONIC_PIGGYBANK-10-"))
	requireCoinLayout(t, s, "10", DefaultShareCount)
}

func TestCoin_ShareInvariant(t *testing.T) {
	_, pub := loadTestKey(t)

	b, err := NewMinter().Mint("bob@example.org", 250, pub)
	require.NoError(t, err)
	require.Equal(t, DefaultShareCount, b.ShareCount())

	leftHashes, rightHashes := b.ShareHashes()
	want := IdentityPlaintext("bob@example.org")

	for i := 0; i < b.ShareCount(); i++ {
		left, err := b.IdentityShare(true, i)
		require.NoError(t, err)
		right, err := b.IdentityShare(false, i)
		require.NoError(t, err)

		require.Len(t, left, len(want))
		assert.Equal(t, want, xor(left, right), "pair %d", i)
		assert.Equal(t, primitives.Hash(left), leftHashes[i], "left hash %d", i)
		assert.Equal(t, primitives.Hash(right), rightHashes[i], "right hash %d", i)
	}
}

func TestCoin_KeysNeverReused(t *testing.T) {
	_, pub := loadTestKey(t)

	b, err := NewMinter().Mint("carol", 1, pub)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < b.ShareCount(); i++ {
		left, err := b.IdentityShare(true, i)
		require.NoError(t, err)
		assert.False(t, seen[string(left)], "pad %d reused", i)
		seen[string(left)] = true
	}
}

func TestCoin_StringLayout(t *testing.T) {
	_, pub := loadTestKey(t)

	b, err := NewMinter().Mint("alice", 10, pub)
	require.NoError(t, err)

	parts := strings.Split(b.String(), "-")
	require.Len(t, parts, 5)
	assert.Equal(t, BankMarker, parts[0])
	assert.Equal(t, "10", parts[1])
	assert.Equal(t, b.GUID(), parts[2])

	leftHashes, rightHashes := b.ShareHashes()
	assert.Equal(t, strings.Join(leftHashes, ","), parts[3])
	assert.Equal(t, strings.Join(rightHashes, ","), parts[4])

	// Pure function of amount, guid and hashes
	assert.Equal(t, b.String(), formatCoinString(b.Amount(), b.GUID(), leftHashes, rightHashes))
}

func TestCoin_DistinctGUIDs(t *testing.T) {
	_, pub := loadTestKey(t)

	b1, err := NewMinter().Mint("alice", 10, pub)
	require.NoError(t, err)
	b2, err := NewMinter().Mint("alice", 10, pub)
	require.NoError(t, err)

	assert.NotEqual(t, b1.GUID(), b2.GUID())
	assert.NotEqual(t, b1.String(), b2.String())
}

func TestCoin_IdentityShare_OutOfRange(t *testing.T) {
	_, pub := loadTestKey(t)

	b, err := NewMinter().Mint("alice", 10, pub)
	require.NoError(t, err)

	for _, i := range []int{20, 21, -1} {
		_, err := b.IdentityShare(true, i)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "index %d: got %v", i, err)
		_, err = b.IdentityShare(false, i)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "index %d: got %v", i, err)
	}

	_, err = b.IdentityShare(true, 19)
	assert.NoError(t, err)
}

func TestCoin_IdentityShare_ReturnsCopy(t *testing.T) {
	_, pub := loadTestKey(t)

	b, err := NewMinter().Mint("alice", 10, pub)
	require.NoError(t, err)

	share, err := b.IdentityShare(true, 0)
	require.NoError(t, err)
	original := append([]byte(nil), share...)
	share[0] ^= 0xff

	again, err := b.IdentityShare(true, 0)
	require.NoError(t, err)
	assert.Equal(t, original, again)
}

func TestMinter_WithShareCount(t *testing.T) {
	_, pub := loadTestKey(t)

	b, err := NewMinter().WithShareCount(3).Mint("alice", 5, pub)
	require.NoError(t, err)
	assert.Equal(t, 3, b.ShareCount())

	parts := strings.Split(b.String(), "-")
	require.Len(t, parts, 5)
	assert.Len(t, strings.Split(parts[3], ","), 3)
	assert.Len(t, strings.Split(parts[4], ","), 3)

	_, err = b.IdentityShare(true, 3)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	_, err = NewMinter().WithShareCount(0).Mint("alice", 5, pub)
	assert.True(t, errors.Is(err, ErrInvalidShareCount), "got %v", err)
}

func TestMinter_WithGenerator(t *testing.T) {
	_, pub := loadTestKey(t)

	// guid (48) + 1 pad of len("IDENT:a") = 7 bytes
	seed := bytes.Repeat([]byte{0x42}, primitives.IdentifierBytes+7)
	gen := primitives.New(bytes.NewReader(seed))

	b, err := NewMinter().WithShareCount(1).WithGenerator(gen).WithRandom(nil).Mint("a", 1, pub)
	// The seeded reader is exhausted before blinding, and WithRandom(nil) falls back to it
	assert.Error(t, err)
	assert.Nil(t, b)

	gen = primitives.New(bytes.NewReader(seed))
	b, err = NewMinter().WithShareCount(1).WithGenerator(gen).WithRandom(primitives.Default().Reader()).Mint("a", 1, pub)
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("42", primitives.IdentifierBytes), b.GUID())
	left, err := b.IdentityShare(true, 0)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x42}, 7), left)
}

func TestMinter_WithNilGenerator(t *testing.T) {
	_, pub := loadTestKey(t)

	b, err := NewMinter().WithGenerator(nil).Mint("alice", 10, pub)
	require.NoError(t, err)
	assert.Len(t, b.GUID(), primitives.IdentifierBytes*2)
}
