package coin

import (
	"context"
	"math/big"

	"github.com/google/uuid"
)

// SigningRequest is what a purchaser sends to the bank. It carries nothing
// that links the eventual coin string to the purchaser.
type SigningRequest struct {
	ID             uuid.UUID // Correlates the request with the bank's reply
	Amount         uint64    // Face value the purchaser is paying for
	BlindedMessage *big.Int  // Blinded coin string hash
}

// Signer is the bank's blind-signing service.
type Signer interface {
	// SignBlinded returns the bank's signature over req.BlindedMessage.
	// The context can be used for cancellation.
	SignBlinded(ctx context.Context, req *SigningRequest) (*big.Int, error)
}
