package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/mahdiidarabi/blindcoin/internal/bank"
	"github.com/mahdiidarabi/blindcoin/pkg/coin"
	"github.com/mahdiidarabi/blindcoin/pkg/primitives"
	"github.com/mahdiidarabi/blindcoin/pkg/rsablind"
)

var commandKeygen = cli.Command{
	Name:  "keygen",
	Usage: "generate a demo bank key pair",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "out, o", Value: "bank.pem", Usage: "where to write the private key (PEM)"},
		cli.StringFlag{Name: "public, p", Usage: "where to write the public key (JSON)"},
		cli.IntFlag{Name: "bits", Usage: "key size; 0 uses the configured key_bits"},
	},
	Action: keygen,
}

var commandMint = cli.Command{
	Name:  "mint",
	Usage: "build and blind a coin, printing what to send to the bank",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "identity, i", Usage: "purchaser identity hidden in the coin"},
		cli.Uint64Flag{Name: "amount, a", Usage: "face value"},
		cli.StringFlag{Name: "public-key, k", Usage: "bank public key (JSON or PEM); defaults to bank_public_key_file"},
		cli.IntFlag{Name: "shares", Usage: "identity share pairs; 0 uses the configured share_count"},
	},
	Action: mint,
}

var commandIssue = cli.Command{
	Name:  "issue",
	Usage: "mint a coin and have an in-process bank sign it",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "identity, i", Usage: "purchaser identity hidden in the coin"},
		cli.Uint64Flag{Name: "amount, a", Usage: "face value"},
		cli.StringFlag{Name: "bank-key, b", Usage: "bank private key (PEM); defaults to bank_key_file"},
		cli.IntFlag{Name: "shares", Usage: "identity share pairs; 0 uses the configured share_count"},
	},
	Action: issue,
}

var commandDecrypt = cli.Command{
	Name:  "decrypt",
	Usage: "XOR a revealed identity share pair back together",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "key", Usage: "left share (hex)"},
		cli.StringFlag{Name: "ciphertext", Usage: "right share (hex)"},
		cli.StringFlag{Name: "format, f", Value: string(primitives.FormatString), Usage: "string or buffer"},
	},
	Action: decrypt,
}

func keygen(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}

	bits := c.Int("bits")
	if bits == 0 {
		bits = cfg.KeyBits
	}
	b, err := bank.Generate(bits, log)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := bank.SavePEM(out, b.PrivateKey()); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	log.WithField("file", out).Info("Wrote bank private key")

	if pubPath := c.String("public"); pubPath != "" {
		data, err := json.MarshalIndent(b.PublicKey(), "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(pubPath, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", pubPath, err)
		}
		log.WithField("file", pubPath).Info("Wrote bank public key")
	}
	return nil
}

func mint(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	keyPath := c.String("public-key")
	if keyPath == "" {
		keyPath = cfg.BankPublicKeyFile
	}
	if keyPath == "" {
		return errors.New("--public-key is required (or set bank_public_key_file)")
	}
	pub, err := rsablind.ParserFor(keyPath).ParseKey(keyPath)
	if err != nil {
		return fmt.Errorf("failed to load bank public key: %w", err)
	}

	minter := coin.NewMinter().WithShareCount(shareCount(c, cfg.ShareCount)).WithLogger(log)
	b, err := minter.Mint(identity, c.Uint64("amount"), pub)
	if err != nil {
		return err
	}

	req := b.Request()
	fmt.Fprintf(c.App.Writer, "coin:    %s\n", b.String())
	fmt.Fprintf(c.App.Writer, "request: %s\n", req.ID)
	fmt.Fprintf(c.App.Writer, "blinded: %s\n", req.BlindedMessage.Text(16))
	return nil
}

func issue(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	keyPath := c.String("bank-key")
	if keyPath == "" {
		keyPath = cfg.BankKeyFile
	}
	if keyPath == "" {
		return errors.New("--bank-key is required (or set bank_key_file)")
	}
	priv, err := bank.LoadPEM(keyPath)
	if err != nil {
		return fmt.Errorf("failed to load bank key: %w", err)
	}
	b := bank.New(priv, log)

	minter := coin.NewMinter().WithShareCount(shareCount(c, cfg.ShareCount)).WithLogger(log)
	u, err := minter.Issue(context.Background(), b, identity, c.Uint64("amount"), b.PublicKey())
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "coin:      %s\n", u.String())
	fmt.Fprintf(c.App.Writer, "signature: %s\n", u.Signature().Text(16))
	return nil
}

func decrypt(c *cli.Context) error {
	key, err := hex.DecodeString(c.String("key"))
	if err != nil {
		return fmt.Errorf("failed to parse key: %w", err)
	}
	ciphertext, err := hex.DecodeString(c.String("ciphertext"))
	if err != nil {
		return fmt.Errorf("failed to parse ciphertext: %w", err)
	}

	p, err := primitives.DecryptOneTimePadAs(key, ciphertext, primitives.Format(c.String("format")))
	if err != nil {
		return err
	}

	switch v := p.(type) {
	case string:
		fmt.Fprintln(c.App.Writer, v)
	case []byte:
		fmt.Fprintln(c.App.Writer, hex.EncodeToString(v))
	}
	return nil
}

func requireIdentity(c *cli.Context) (string, error) {
	identity := c.String("identity")
	if identity == "" {
		return "", errors.New("--identity is required")
	}
	return identity, nil
}

func shareCount(c *cli.Context, configured int) int {
	if n := c.Int("shares"); n != 0 {
		return n
	}
	return configured
}
