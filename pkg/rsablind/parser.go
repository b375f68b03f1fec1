package rsablind

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"strings"
)

// KeyParser loads a bank public key from some source.
type KeyParser interface {
	// ParseKey parses a public key from a source and returns it.
	ParseKey(source string) (*PublicKey, error)
}

// JSONKeyParser parses public keys from JSON files.
type JSONKeyParser struct {
	NField string // Field name for the modulus (default: "n")
	EField string // Field name for the exponent (default: "e")
}

// ParseKey parses a public key from a JSON file.
//
// Expected format (hex strings need a 0x prefix, numbers may be bare):
//
//	{"n": "0xc0ffee...", "e": 65537}
func (p *JSONKeyParser) ParseKey(jsonFile string) (*PublicKey, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var item map[string]interface{}
	if err := decoder.Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	nField := p.NField
	if nField == "" {
		nField = "n"
	}
	eField := p.EField
	if eField == "" {
		eField = "e"
	}

	nVal, ok := item[nField]
	if !ok {
		return nil, fmt.Errorf("missing %s field", nField)
	}
	n, err := parseBigInt(nVal)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", nField, err)
	}

	eVal, ok := item[eField]
	if !ok {
		return nil, fmt.Errorf("missing %s field", eField)
	}
	e, err := parseBigInt(eVal)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", eField, err)
	}

	key := &PublicKey{N: n, E: e}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return key, nil
}

// PEMKeyParser parses public keys from PEM files holding either a PKIX
// "PUBLIC KEY" or a PKCS#1 "RSA PUBLIC KEY" block.
type PEMKeyParser struct{}

// ParseKey parses a public key from a PEM file.
func (p *PEMKeyParser) ParseKey(pemFile string) (*PublicKey, error) {
	data, err := os.ReadFile(pemFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParsePEM(data)
}

// ParsePEM parses a public key from PEM-encoded bytes.
func ParsePEM(data []byte) (*PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	switch block.Type {
	case "RSA PUBLIC KEY":
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS#1 public key: %w", err)
		}
		return NewPublicKey(pub), nil

	case "PUBLIC KEY":
		generic, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKIX public key: %w", err)
		}
		pub, ok := generic.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: key is %T, not RSA", ErrInvalidKey, generic)
		}
		return NewPublicKey(pub), nil

	default:
		return nil, fmt.Errorf("unsupported PEM block type: %s", block.Type)
	}
}

// ParserFor picks a parser from the file extension: .pem for PEM, anything else JSON.
func ParserFor(path string) KeyParser {
	if strings.HasSuffix(strings.ToLower(path), ".pem") {
		return &PEMKeyParser{}
	}
	return &JSONKeyParser{}
}

// parseBigInt parses a big integer from various formats (0x-prefixed hex, decimal string, number).
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			base = 16
		} else if strings.ContainsAny(s, "abcdefABCDEF") {
			base = 16
		}

		z := new(big.Int)
		if _, ok := z.SetString(s, base); !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case json.Number:
		z := new(big.Int)
		if _, ok := z.SetString(string(v), 10); !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case float64:
		s := fmt.Sprintf("%.0f", v)
		z := new(big.Int)
		if _, ok := z.SetString(s, 10); !ok {
			return nil, fmt.Errorf("invalid number format: %v", v)
		}
		return z, nil

	case int64:
		return big.NewInt(v), nil

	case int:
		return big.NewInt(int64(v)), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}

// MarshalJSON renders the key in the format JSONKeyParser reads.
func (k *PublicKey) MarshalJSON() ([]byte, error) {
	if k == nil || k.N == nil || k.E == nil {
		return nil, ErrInvalidKey
	}
	return json.Marshal(struct {
		N string `json:"n"`
		E string `json:"e"`
	}{
		N: "0x" + k.N.Text(16),
		E: k.E.Text(10),
	})
}
