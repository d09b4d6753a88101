package nostr

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ErrInvalidKey is wrapped by every key parsing failure.
var ErrInvalidKey = errors.New("invalid key")

// GeneratePrivateKey creates a random secret key drawn from the operating
// system's entropy source and returns it hex-encoded.
func GeneratePrivateKey() string {
	sk, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		// only fails if the system entropy source is broken
		panic(fmt.Errorf("failed to generate secret key: %w", err))
	}
	return hex.EncodeToString(sk.Serialize())
}

// GetPublicKey derives the x-only public key for a hex secret key.
func GetPublicKey(sk string) (string, error) {
	b, err := hex.DecodeString(sk)
	if err != nil || len(b) != 32 {
		return "", fmt.Errorf("%w: secret key '%s' is not 32 bytes of hex", ErrInvalidKey, sk)
	}

	pk := secp256k1.PrivKeyFromBytes(b).PubKey().SerializeCompressed()
	return hex.EncodeToString(pk[1:]), nil
}

// IsValidPublicKey checks if a string is a well-formed x-only public key in hex.
func IsValidPublicKey(pk string) bool {
	if !IsValid32ByteHex(pk) {
		return false
	}
	b, _ := hex.DecodeString(pk)
	_, err := schnorr.ParsePubKey(b)
	return err == nil
}

// ParseSecretKey accepts a secret key as 64-character hex or "nsec1..." bech32
// and returns it hex-encoded. Strings carrying the public key prefix never
// parse as secret keys.
func ParseSecretKey(input string) (string, error) {
	return parseKey(input, "nsec")
}

// ParsePublicKey accepts a public key as 64-character hex or "npub1..." bech32
// and returns it hex-encoded. Strings carrying the secret key prefix never
// parse as public keys.
func ParsePublicKey(input string) (string, error) {
	return parseKey(input, "npub")
}

func parseKey(input string, hrp string) (string, error) {
	if strings.HasPrefix(input, hrp+"1") {
		prefix, bits5, err := bech32.DecodeNoLimit(input)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		if prefix != hrp {
			return "", fmt.Errorf("%w: unexpected prefix '%s'", ErrInvalidKey, prefix)
		}
		data, err := bech32.ConvertBits(bits5, 5, 8, false)
		if err != nil || len(data) != 32 {
			return "", fmt.Errorf("%w: '%s' does not carry 32 bytes", ErrInvalidKey, input)
		}
		return hex.EncodeToString(data), nil
	}

	if IsValid32ByteHex(input) {
		return input, nil
	}

	return "", fmt.Errorf("%w: '%s' is neither 64-character hex nor %s bech32", ErrInvalidKey, input, hrp)
}

// SignSchnorr produces a BIP-340 signature over a pre-hashed 32-byte message
// digest. Signing uses a fresh random nonce, so two calls over the same
// digest yield different (both valid) signatures.
func SignSchnorr(sk string, digest []byte) (string, error) {
	if len(digest) != 32 {
		return "", fmt.Errorf("message digest must be 32 bytes, got %d", len(digest))
	}

	b, err := hex.DecodeString(sk)
	if err != nil || len(b) != 32 {
		return "", fmt.Errorf("%w: secret key '%s' is not 32 bytes of hex", ErrInvalidKey, sk)
	}

	sig, err := schnorr.Sign(secp256k1.PrivKeyFromBytes(b), digest)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig.Serialize()), nil
}
