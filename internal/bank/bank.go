// Package bank is an in-process stand-in for the bank's blind-signing
// service. It holds an RSA private key, signs blinded messages it cannot
// read, and loads or persists its key as PEM. The CLI demo and tests use it;
// a real deployment would put the same Signer contract behind a network
// service.
package bank

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mahdiidarabi/blindcoin/pkg/coin"
	"github.com/mahdiidarabi/blindcoin/pkg/rsablind"
)

// ErrEmptyRequest is returned for a signing request without a blinded message.
var ErrEmptyRequest = errors.New("signing request has no blinded message")

// Bank signs blinded coins under a single RSA key.
type Bank struct {
	priv *rsa.PrivateKey
	pub  *rsablind.PublicKey
	log  logrus.FieldLogger
}

var _ coin.Signer = (*Bank)(nil)

// New creates a bank around an existing private key. A nil logger discards output.
func New(priv *rsa.PrivateKey, log logrus.FieldLogger) *Bank {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Bank{
		priv: priv,
		pub:  rsablind.NewPublicKey(&priv.PublicKey),
		log:  log,
	}
}

// Generate creates a bank with a fresh key of the given size.
func Generate(bits int, log logrus.FieldLogger) (*Bank, error) {
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate bank key: %w", err)
	}
	return New(priv, log), nil
}

// PublicKey returns the key purchasers blind their coins for.
func (b *Bank) PublicKey() *rsablind.PublicKey {
	return b.pub
}

// PrivateKey returns the raw private key.
func (b *Bank) PrivateKey() *rsa.PrivateKey {
	return b.priv
}

// SignBlinded signs req.BlindedMessage. The bank learns only the request ID
// and amount, never the coin string.
func (b *Bank) SignBlinded(ctx context.Context, req *coin.SigningRequest) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil || req.BlindedMessage == nil {
		return nil, ErrEmptyRequest
	}

	sig, err := rsablind.Sign(b.priv, req.BlindedMessage)
	if err != nil {
		b.log.WithField("request", req.ID.String()).WithError(err).Warn("Rejected signing request")
		return nil, err
	}

	b.log.WithFields(logrus.Fields{
		"request": req.ID.String(),
		"amount":  req.Amount,
	}).Info("Signed blinded coin")
	return sig, nil
}

// LoadPEM reads a private key stored as PKCS#1 ("RSA PRIVATE KEY") or
// PKCS#8 ("PRIVATE KEY").
func LoadPEM(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to decode PEM block from key file")
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		generic, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		priv, ok := generic.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("key is not an RSA private key")
		}
		return priv, nil
	default:
		return nil, fmt.Errorf("unsupported PEM block type: %s", block.Type)
	}
}

// SavePEM writes priv as PKCS#1 PEM with 0600 permissions.
func SavePEM(path string, priv *rsa.PrivateKey) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	return pem.Encode(file, &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})
}
