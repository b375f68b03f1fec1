// Package rsablind implements Chaum's RSA blind signatures over SHA-256
// message hashes.
//
// A requester blinds H(m) with a random factor r, the signer raises the
// blinded value to its private exponent without learning H(m), and the
// requester divides r back out to obtain an ordinary RSA signature:
//
//	blinded = H(m) · r^e   mod n
//	signed  = blinded^d    mod n
//	sig     = signed · r⁻¹ mod n   (so sig^e ≡ H(m))
//
// # Quick Start
//
//	pub, err := (&rsablind.JSONKeyParser{}).ParseKey("bank_public.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	blinded, r, err := rsablind.Blind(rand.Reader, message, pub)
//	// ... send blinded to the bank, receive signed ...
//	sig, err := rsablind.Unblind(signed, r, pub)
//
//	ok := rsablind.Verify(sig, message, pub)
//
// The signer side, Sign, exists for banks and tests; coin builders only need
// Blind and Unblind.
package rsablind
