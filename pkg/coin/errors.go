package coin

import "errors"

var (
	// ErrMissingSignature is returned when a coin is unblinded before the bank's signature is attached.
	ErrMissingSignature = errors.New("coin has no bank signature")

	// ErrIndexOutOfRange is returned for identity share indices outside [0, ShareCount).
	ErrIndexOutOfRange = errors.New("identity share index out of range")

	// ErrInvalidShareCount is returned when a minter is configured with fewer than one share pair.
	ErrInvalidShareCount = errors.New("share count must be at least 1")

	// ErrIncompleteCoin is returned when a lifecycle value was not produced by Mint.
	ErrIncompleteCoin = errors.New("coin is missing its body or blinding state")

	// ErrMalformedCoin is returned when a coin string does not have the canonical layout.
	ErrMalformedCoin = errors.New("malformed coin string")
)
