package coin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mahdiidarabi/blindcoin/pkg/primitives"
)

// Summary is the public content of a coin string, as seen by anyone who
// receives the coin: a merchant, the bank, a double-spend checker.
type Summary struct {
	Amount      uint64
	GUID        string
	LeftHashes  []string
	RightHashes []string
}

// ParseCoinString splits a canonical coin string into its fields.
func ParseCoinString(s string) (*Summary, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: expected 5 fields, got %d", ErrMalformedCoin, len(parts))
	}
	if parts[0] != BankMarker {
		return nil, fmt.Errorf("%w: bad marker %q", ErrMalformedCoin, parts[0])
	}

	amount, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad amount: %v", ErrMalformedCoin, err)
	}
	if len(parts[2]) != primitives.IdentifierBytes*2 || !isLowerHex(parts[2]) {
		return nil, fmt.Errorf("%w: bad guid", ErrMalformedCoin)
	}

	left := strings.Split(parts[3], ",")
	right := strings.Split(parts[4], ",")
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: %d left hashes but %d right hashes", ErrMalformedCoin, len(left), len(right))
	}
	for _, h := range append(append([]string(nil), left...), right...) {
		if len(h) != primitives.HashSize || !isLowerHex(h) {
			return nil, fmt.Errorf("%w: bad share hash %q", ErrMalformedCoin, h)
		}
	}

	return &Summary{
		Amount:      amount,
		GUID:        parts[2],
		LeftHashes:  left,
		RightHashes: right,
	}, nil
}

// CheckShare reports whether share is the revealed half hashed at position i.
func (s *Summary) CheckShare(isLeft bool, i int, share []byte) (bool, error) {
	if i < 0 || i >= len(s.LeftHashes) {
		return false, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(s.LeftHashes))
	}

	want := s.RightHashes[i]
	if isLeft {
		want = s.LeftHashes[i]
	}
	return primitives.Hash(share) == want, nil
}

func isLowerHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}
