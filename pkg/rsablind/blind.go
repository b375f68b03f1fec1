package rsablind

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var (
	// ErrInvalidKey is returned for a nil or malformed RSA key.
	ErrInvalidKey = errors.New("invalid RSA key")

	// ErrMessageOutOfRange is returned when a value to sign or unblind is not in [0, n).
	ErrMessageOutOfRange = errors.New("value out of range for modulus")

	// ErrNotInvertible is returned when the blinding factor has no inverse mod n.
	ErrNotInvertible = errors.New("blinding factor is not invertible")

	// ErrNoBlindingFactor is returned when no usable blinding factor was drawn within maxBlindAttempts.
	ErrNoBlindingFactor = errors.New("no usable blinding factor found")
)

var (
	bigOne   = big.NewInt(1)
	bigThree = big.NewInt(3)
)

// maxBlindAttempts bounds the search for r. On a real RSA modulus nearly every
// draw is usable, so running out means the random source is broken.
const maxBlindAttempts = 128

// PublicKey is an RSA public key (n, e) as seen by a coin builder.
type PublicKey struct {
	N *big.Int // Modulus
	E *big.Int // Public exponent
}

// NewPublicKey wraps a standard library RSA public key.
func NewPublicKey(pub *rsa.PublicKey) *PublicKey {
	return &PublicKey{
		N: new(big.Int).Set(pub.N),
		E: big.NewInt(int64(pub.E)),
	}
}

// Validate checks that the key can be used for blinding.
func (k *PublicKey) Validate() error {
	if k == nil || k.N == nil || k.E == nil {
		return fmt.Errorf("%w: missing modulus or exponent", ErrInvalidKey)
	}
	if k.N.Cmp(bigThree) < 0 || k.N.Bit(0) == 0 {
		return fmt.Errorf("%w: modulus must be odd and at least 3", ErrInvalidKey)
	}
	if k.E.Cmp(bigOne) <= 0 || k.E.Bit(0) == 0 {
		return fmt.Errorf("%w: exponent must be odd and greater than 1", ErrInvalidKey)
	}
	return nil
}

// MessageHash returns SHA-256(message) as a big-endian integer.
func MessageHash(message []byte) *big.Int {
	h := sha256.Sum256(message)
	return new(big.Int).SetBytes(h[:])
}

// Blind blinds H(message) for signing under pub.
//
// Returns:
//   - blinded: H(message) · r^e mod n, safe to hand to the signer
//   - r: the blinding factor, which must stay secret until Unblind
func Blind(random io.Reader, message []byte, pub *PublicKey) (blinded, r *big.Int, err error) {
	if err := pub.Validate(); err != nil {
		return nil, nil, err
	}
	if random == nil {
		random = rand.Reader
	}

	// r uniform in (1, n) and coprime to n
	gcd := new(big.Int)
	found := false
	for attempt := 0; attempt < maxBlindAttempts; attempt++ {
		r, err = rand.Int(random, pub.N)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to draw blinding factor: %w", err)
		}
		if r.Cmp(bigOne) <= 0 {
			continue
		}
		if gcd.GCD(nil, nil, r, pub.N).Cmp(bigOne) == 0 {
			found = true
			break
		}
	}
	if !found {
		return nil, nil, fmt.Errorf("%w after %d attempts", ErrNoBlindingFactor, maxBlindAttempts)
	}

	blinded = new(big.Int).Exp(r, pub.E, pub.N)
	blinded.Mul(blinded, MessageHash(message))
	blinded.Mod(blinded, pub.N)

	return blinded, r, nil
}

// Sign computes blinded^d mod n. This is the signer's half of the protocol.
func Sign(priv *rsa.PrivateKey, blinded *big.Int) (*big.Int, error) {
	if priv == nil || priv.N == nil || priv.D == nil {
		return nil, fmt.Errorf("%w: missing private key", ErrInvalidKey)
	}
	if blinded == nil || blinded.Sign() < 0 || blinded.Cmp(priv.N) >= 0 {
		return nil, ErrMessageOutOfRange
	}
	return new(big.Int).Exp(blinded, priv.D, priv.N), nil
}

// Unblind removes the blinding factor r from a signed blinded value,
// yielding a plain RSA signature over the original message hash.
func Unblind(signed, r *big.Int, pub *PublicKey) (*big.Int, error) {
	if err := pub.Validate(); err != nil {
		return nil, err
	}
	if signed == nil || signed.Sign() < 0 || signed.Cmp(pub.N) >= 0 {
		return nil, ErrMessageOutOfRange
	}
	if r == nil {
		return nil, ErrNotInvertible
	}

	rInv := new(big.Int).ModInverse(r, pub.N)
	if rInv == nil {
		return nil, ErrNotInvertible
	}

	sig := new(big.Int).Mul(signed, rInv)
	sig.Mod(sig, pub.N)
	return sig, nil
}

// Verify reports whether sig^e mod n equals H(message) mod n.
func Verify(sig *big.Int, message []byte, pub *PublicKey) bool {
	if sig == nil || pub.Validate() != nil {
		return false
	}
	if sig.Sign() < 0 || sig.Cmp(pub.N) >= 0 {
		return false
	}

	expected := MessageHash(message)
	expected.Mod(expected, pub.N)

	return new(big.Int).Exp(sig, pub.E, pub.N).Cmp(expected) == 0
}
