package rsablind

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fixturesDir returns the path to the fixtures directory (works regardless of test cwd).
func fixturesDir() string {
	_, f, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(f), "..", "..", "fixtures")
}

// loadTestPrivateKey reads the PKCS#1 bank key from fixtures/bank_key.pem
func loadTestPrivateKey(t *testing.T) *rsa.PrivateKey {
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
	return priv
}
