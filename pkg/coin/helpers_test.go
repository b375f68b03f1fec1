package coin

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mahdiidarabi/blindcoin/pkg/rsablind"
)

// fixturesDir returns the path to the fixtures directory (works regardless of test cwd).
func fixturesDir() string {
	_, f, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(f), "..", "..", "fixtures")
}

// loadTestKey reads the bank key pair from fixtures/bank_key.pem
func loadTestKey(t *testing.T) (*rsa.PrivateKey, *rsablind.PublicKey) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(fixturesDir(), "bank_key.pem"))
	if err != nil {
		t.Fatalf("Failed to read bank key: %v", err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		t.Fatal("Failed to decode bank key PEM")
	}
	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		t.Fatalf("Failed to parse bank key: %v", err)
	}
	return priv, rsablind.NewPublicKey(&priv.PublicKey)
}

// testSigner signs every request and remembers what it saw.
type testSigner struct {
	priv *rsa.PrivateKey
	seen []*SigningRequest
	err  error
}

func (s *testSigner) SignBlinded(ctx context.Context, req *SigningRequest) (*big.Int, error) {
	s.seen = append(s.seen, req)
	if s.err != nil {
		return nil, s.err
	}
	return rsablind.Sign(s.priv, req.BlindedMessage)
}
