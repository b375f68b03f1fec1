package coin

import (
	"fmt"
	"io"
	"math/big"

	"github.com/google/uuid"

	"github.com/mahdiidarabi/blindcoin/pkg/rsablind"
)

// Blinded is a coin whose string has been blinded for the bank.
// The blinding factor never leaves this value.
type Blinded struct {
	*Coin

	blindedMessage *big.Int
	blindingFactor *big.Int
}

// Signed is a blinded coin carrying the bank's signature over the blinded message.
type Signed struct {
	*Blinded

	signature *big.Int
}

// Unblinded is a coin carrying the bank's signature over the coin string itself.
type Unblinded struct {
	*Coin

	signature *big.Int
}

// blind is unexported so a coin is blinded exactly once, by its minter.
func (c *Coin) blind(random io.Reader) (*Blinded, error) {
	blinded, r, err := rsablind.Blind(random, []byte(c.coinString), c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to blind coin: %w", err)
	}
	return &Blinded{
		Coin:           c,
		blindedMessage: blinded,
		blindingFactor: r,
	}, nil
}

// BlindedMessage returns a copy of the value the bank must sign.
func (b *Blinded) BlindedMessage() *big.Int {
	return new(big.Int).Set(b.blindedMessage)
}

// Request wraps the blinded message for a Signer under a fresh request ID.
func (b *Blinded) Request() *SigningRequest {
	return &SigningRequest{
		ID:             uuid.New(),
		Amount:         b.amount,
		BlindedMessage: b.BlindedMessage(),
	}
}

func (b *Blinded) complete() bool {
	return b != nil && b.Coin != nil && b.key != nil && b.blindingFactor != nil
}

// AttachSignature records the bank's signature over the blinded message.
func (b *Blinded) AttachSignature(signature *big.Int) (*Signed, error) {
	if signature == nil {
		return nil, ErrMissingSignature
	}
	if !b.complete() {
		return nil, ErrIncompleteCoin
	}
	if signature.Sign() < 0 || signature.Cmp(b.key.N) >= 0 {
		return nil, fmt.Errorf("signature %w", rsablind.ErrMessageOutOfRange)
	}
	return &Signed{
		Blinded:   b,
		signature: new(big.Int).Set(signature),
	}, nil
}

// Unblind strips the blinding factor from the bank's signature.
func (s *Signed) Unblind() (*Unblinded, error) {
	if s == nil || s.signature == nil {
		return nil, ErrMissingSignature
	}
	if !s.Blinded.complete() {
		return nil, ErrIncompleteCoin
	}

	sig, err := rsablind.Unblind(s.signature, s.blindingFactor, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to unblind signature: %w", err)
	}
	return &Unblinded{
		Coin:      s.Coin,
		signature: sig,
	}, nil
}

// Signature returns a copy of the bank's signature over the blinded message.
func (s *Signed) Signature() *big.Int {
	return new(big.Int).Set(s.signature)
}

// Signature returns a copy of the bank's signature over the coin string.
func (u *Unblinded) Signature() *big.Int {
	return new(big.Int).Set(u.signature)
}
