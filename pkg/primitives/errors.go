package primitives

import "errors"

var (
	// ErrLengthMismatch is returned when a one-time pad key and ciphertext differ in length.
	ErrLengthMismatch = errors.New("key and ciphertext length mismatch")

	// ErrUnsupportedFormat is returned when a decryption result is requested in an unknown format.
	ErrUnsupportedFormat = errors.New("unsupported return format")

	// ErrRangeTooLarge is returned when a bounded random integer is requested
	// over a range wider than a single random byte.
	ErrRangeTooLarge = errors.New("range too big")

	// ErrRangeNotPositive is returned when a bounded random integer is requested over an empty range.
	ErrRangeNotPositive = errors.New("range must be at least 1")
)
