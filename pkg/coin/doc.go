// Package coin builds anonymous electronic coins that a bank can blind-sign.
//
// A coin carries a face value, a random GUID and a set of identity share
// pairs. Each pair is a one-time pad of "IDENT:<purchaser>": either half
// alone is noise, both halves together reveal the purchaser. Only hashes of
// the halves are published in the coin string, so spending a coin twice, and
// thereby revealing both halves of some pair, exposes the double spender.
//
// Coins move through three types, each produced only by the previous one:
//
//	Mint            -> *Blinded    (coin string built and blinded)
//	AttachSignature -> *Signed     (bank signature over the blinded message)
//	Unblind         -> *Unblinded  (bank signature over the coin string)
//
// There is no way to blind a coin twice, and no way to unblind before a
// signature is attached.
//
// # Quick Start
//
//	pub, _ := rsablind.ParserFor("bank_public.json").ParseKey("bank_public.json")
//
//	blinded, err := coin.NewMinter().Mint("alice", 10, pub)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// hand blinded.Request() to the bank, receive its signature
//	signed, err := blinded.AttachSignature(bankSignature)
//	unblinded, err := signed.Unblind()
//
//	fmt.Println(unblinded.String(), unblinded.Signature().Text(16))
//
// Or let the minter drive a Signer end to end:
//
//	unblinded, err := coin.NewMinter().Issue(ctx, bank, "alice", 10, pub)
package coin
