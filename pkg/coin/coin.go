package coin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mahdiidarabi/blindcoin/pkg/primitives"
	"github.com/mahdiidarabi/blindcoin/pkg/rsablind"
)

const (
	// DefaultShareCount is the number of identity share pairs per coin.
	// More pairs raise the chance a double spend reveals the purchaser, at
	// the cost of a longer coin string.
	DefaultShareCount = 20

	// IdentPrefix tags the plaintext hidden in every identity share pair.
	IdentPrefix = "IDENT"

	// BankMarker opens every coin string.
	BankMarker = "ELECTRONIC_PIGGYBANK"
)

// Coin is the immutable body of an anonymous coin. The owner keeps the raw
// identity shares; only their hashes appear in the coin string.
type Coin struct {
	amount uint64
	guid   string
	key    *rsablind.PublicKey

	left  [][]byte // one-time pad keys
	right [][]byte // one-time pad ciphertexts

	leftHashes  []string
	rightHashes []string

	coinString string
}

// IdentityPlaintext returns the value every share pair of a coin owned by identity XORs to.
func IdentityPlaintext(identity string) []byte {
	return []byte(IdentPrefix + ":" + identity)
}

// build assembles a coin body. It does not blind.
func build(gen *primitives.Generator, shareCount int, identity string, amount uint64, key *rsablind.PublicKey) (*Coin, error) {
	guid, err := gen.RandomIdentifier()
	if err != nil {
		return nil, fmt.Errorf("failed to generate guid: %w", err)
	}

	c := &Coin{
		amount:      amount,
		guid:        guid,
		key:         key,
		left:        make([][]byte, 0, shareCount),
		right:       make([][]byte, 0, shareCount),
		leftHashes:  make([]string, 0, shareCount),
		rightHashes: make([]string, 0, shareCount),
	}

	plaintext := IdentityPlaintext(identity)
	for i := 0; i < shareCount; i++ {
		pad, ciphertext, err := gen.MakeOneTimePad(plaintext)
		if err != nil {
			return nil, fmt.Errorf("failed to build identity share %d: %w", i, err)
		}
		c.left = append(c.left, pad)
		c.leftHashes = append(c.leftHashes, primitives.Hash(pad))
		c.right = append(c.right, ciphertext)
		c.rightHashes = append(c.rightHashes, primitives.Hash(ciphertext))
	}

	c.coinString = formatCoinString(amount, guid, c.leftHashes, c.rightHashes)
	return c, nil
}

func formatCoinString(amount uint64, guid string, leftHashes, rightHashes []string) string {
	return strings.Join([]string{
		BankMarker,
		strconv.FormatUint(amount, 10),
		guid,
		strings.Join(leftHashes, ","),
		strings.Join(rightHashes, ","),
	}, "-")
}

// String returns the canonical coin string.
func (c *Coin) String() string {
	return c.coinString
}

// Amount returns the face value.
func (c *Coin) Amount() uint64 {
	return c.amount
}

// GUID returns the coin's random identifier in hex.
func (c *Coin) GUID() string {
	return c.guid
}

// BankKey returns the bank public key the coin was blinded for.
func (c *Coin) BankKey() *rsablind.PublicKey {
	return c.key
}

// ShareCount returns the number of identity share pairs.
func (c *Coin) ShareCount() int {
	return len(c.left)
}

// IdentityShare returns a copy of the left (key) or right (ciphertext) half of pair i.
func (c *Coin) IdentityShare(isLeft bool, i int) ([]byte, error) {
	if i < 0 || i >= len(c.left) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(c.left))
	}

	share := c.right[i]
	if isLeft {
		share = c.left[i]
	}
	return append([]byte(nil), share...), nil
}

// ShareHashes returns copies of the published left and right share hashes.
func (c *Coin) ShareHashes() (left, right []string) {
	left = append([]string(nil), c.leftHashes...)
	right = append([]string(nil), c.rightHashes...)
	return left, right
}
