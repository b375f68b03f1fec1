package coin

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/mahdiidarabi/blindcoin/pkg/primitives"
	"github.com/mahdiidarabi/blindcoin/pkg/rsablind"
)

// Minter provides a high-level API for building and issuing coins.
type Minter struct {
	shareCount int
	gen        *primitives.Generator
	random     io.Reader // blinding factor source; nil means gen's reader
	log        logrus.FieldLogger
}

// NewMinter creates a minter with default settings.
func NewMinter() *Minter {
	return &Minter{
		shareCount: DefaultShareCount,
		gen:        primitives.Default(),
		log:        discardLogger(),
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithShareCount sets the number of identity share pairs per coin.
func (m *Minter) WithShareCount(n int) *Minter {
	m.shareCount = n
	return m
}

// WithGenerator sets the source of pads and GUIDs. A nil gen restores the default.
func (m *Minter) WithGenerator(gen *primitives.Generator) *Minter {
	if gen == nil {
		gen = primitives.Default()
	}
	m.gen = gen
	return m
}

// WithRandom sets the source of blinding factors.
func (m *Minter) WithRandom(r io.Reader) *Minter {
	m.random = r
	return m
}

// WithLogger sets the logger. Identities and share bytes are never logged.
func (m *Minter) WithLogger(log logrus.FieldLogger) *Minter {
	m.log = log
	return m
}

// ShareCount returns the configured number of share pairs.
func (m *Minter) ShareCount() int {
	return m.shareCount
}

// Mint builds a coin for identity worth amount and blinds it for pub.
//
// Args:
//   - identity: Purchaser identity hidden in the share pairs.
//   - amount: Face value.
//   - pub: Bank public key the coin will be signed under.
//
// Returns:
//   - The blinded coin, ready for AttachSignature, or an error.
func (m *Minter) Mint(identity string, amount uint64, pub *rsablind.PublicKey) (*Blinded, error) {
	if m.shareCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShareCount, m.shareCount)
	}
	if err := pub.Validate(); err != nil {
		return nil, fmt.Errorf("bank key: %w", err)
	}

	c, err := build(m.gen, m.shareCount, identity, amount, pub)
	if err != nil {
		return nil, err
	}

	random := m.random
	if random == nil {
		random = m.gen.Reader()
	}
	b, err := c.blind(random)
	if err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"guid":   shortGUID(c.guid),
		"amount": amount,
		"shares": m.shareCount,
	}).Debug("Minted blinded coin")

	return b, nil
}

// Issue mints a coin, has signer sign it and unblinds the result.
func (m *Minter) Issue(ctx context.Context, signer Signer, identity string, amount uint64, pub *rsablind.PublicKey) (*Unblinded, error) {
	b, err := m.Mint(identity, amount, pub)
	if err != nil {
		return nil, fmt.Errorf("failed to mint coin: %w", err)
	}

	req := b.Request()
	log := m.log.WithFields(logrus.Fields{
		"guid":    shortGUID(b.guid),
		"request": req.ID.String(),
	})
	log.Debug("Requesting blind signature")

	sig, err := signer.SignBlinded(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bank refused request %s: %w", req.ID, err)
	}

	signed, err := b.AttachSignature(sig)
	if err != nil {
		return nil, err
	}
	u, err := signed.Unblind()
	if err != nil {
		return nil, err
	}

	log.Info("Coin issued")
	return u, nil
}

// New mints a blinded coin with the default minter. It corresponds to
// NewMinter().Mint(identity, amount, &rsablind.PublicKey{N: n, E: e}).
func New(identity string, amount uint64, n, e *big.Int) (*Blinded, error) {
	return NewMinter().Mint(identity, amount, &rsablind.PublicKey{N: n, E: e})
}

func shortGUID(guid string) string {
	if len(guid) > 12 {
		return guid[:12]
	}
	return guid
}
