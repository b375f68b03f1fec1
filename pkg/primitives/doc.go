// Package primitives provides the low-level building blocks used to construct
// anonymous coins: SHA-256 hashing, one-time pad encryption, unbiased bounded
// random integers and random hex identifiers.
//
// All randomness flows through a Generator, which wraps an io.Reader. The
// package-level helpers use a Generator backed by crypto/rand.Reader; tests
// can build their own Generator over a deterministic reader.
//
// # Quick Start
//
//	key, ciphertext, err := primitives.MakeOneTimePad([]byte("IDENT:alice"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := primitives.DecryptOneTimePad(key, ciphertext)
//	// plaintext == []byte("IDENT:alice")
//
//	digest := primitives.Hash(key) // 64 hex characters
//
// # Custom Randomness
//
//	gen := primitives.New(myReader)
//	guid, err := gen.RandomIdentifier()
package primitives
