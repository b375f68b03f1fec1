package primitives

import "fmt"

// Format selects how DecryptOneTimePadAs renders a recovered plaintext.
type Format string

const (
	// FormatBuffer returns the plaintext as []byte. It is also used when no format is given.
	FormatBuffer Format = "buffer"
	// FormatString returns the plaintext as a string.
	FormatString Format = "string"
)

// MakeOneTimePad encrypts plaintext under a fresh random key of the same length.
// Every call draws new key material, even for identical plaintexts.
func (g *Generator) MakeOneTimePad(plaintext []byte) (key, ciphertext []byte, err error) {
	key, err = g.RandomBytes(len(plaintext))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to draw pad: %w", err)
	}

	ciphertext = make([]byte, len(plaintext))
	for i := range plaintext {
		ciphertext[i] = plaintext[i] ^ key[i]
	}
	return key, ciphertext, nil
}

// MakeOneTimePad calls Default().MakeOneTimePad.
func MakeOneTimePad(plaintext []byte) (key, ciphertext []byte, err error) {
	return defaultGenerator.MakeOneTimePad(plaintext)
}

// DecryptOneTimePad recovers the plaintext by XORing key and ciphertext.
func DecryptOneTimePad(key, ciphertext []byte) ([]byte, error) {
	if len(key) != len(ciphertext) {
		return nil, fmt.Errorf("%w: key is %d bytes, ciphertext is %d bytes", ErrLengthMismatch, len(key), len(ciphertext))
	}

	p := make([]byte, len(key))
	for i := range key {
		p[i] = key[i] ^ ciphertext[i]
	}
	return p, nil
}

// DecryptOneTimePadAs decrypts like DecryptOneTimePad and renders the result
// as []byte (FormatBuffer or "") or string (FormatString).
func DecryptOneTimePadAs(key, ciphertext []byte, format Format) (interface{}, error) {
	switch format {
	case "", FormatBuffer, FormatString:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	p, err := DecryptOneTimePad(key, ciphertext)
	if err != nil {
		return nil, err
	}
	if format == FormatString {
		return string(p), nil
	}
	return p, nil
}
