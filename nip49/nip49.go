// Package nip49 encrypts secret keys under a password into the portable
// ncryptsec bech32 format, using scrypt for key stretching and
// XChaCha20-Poly1305 for the actual sealing.
package nip49

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// KeySecurityByte travels with the ciphertext and records how carefully the
// plaintext key was handled before encryption. It is authenticated but not
// secret.
type KeySecurityByte byte

const (
	KnownToHaveBeenHandledInsecurely    KeySecurityByte = 0x00
	NotKnownToHaveBeenHandledInsecurely KeySecurityByte = 0x01
	ClientDoesNotTrackThisData          KeySecurityByte = 0x02
)

const version byte = 0x02

// payload layout: version (1) | logn (1) | salt (16) | nonce (24) | ksb (1) | sealed key (32+16)
const (
	saltOffset  = 2
	nonceOffset = saltOffset + 16
	ksbOffset   = nonceOffset + 24
	keyOffset   = ksbOffset + 1
	payloadSize = keyOffset + 32 + 16
)

// Encrypt seals a hex secret key under the password. logn is the scrypt work
// factor exponent (the rounds are 2^logn, 16 is a sane default).
func Encrypt(secretKey string, password string, logn uint8, ksb KeySecurityByte) (string, error) {
	skb, err := hex.DecodeString(secretKey)
	if err != nil || len(skb) != 32 {
		return "", fmt.Errorf("invalid secret key")
	}
	return EncryptBytes(skb, password, logn, ksb)
}

// EncryptBytes is Encrypt for a raw 32-byte key.
func EncryptBytes(secretKey []byte, password string, logn uint8, ksb KeySecurityByte) (string, error) {
	payload := make([]byte, payloadSize)
	payload[0] = version
	payload[1] = logn
	if _, err := rand.Read(payload[saltOffset:ksbOffset]); err != nil {
		return "", fmt.Errorf("failed to read random salt and nonce: %w", err)
	}
	payload[ksbOffset] = byte(ksb)

	salt := payload[saltOffset:nonceOffset]
	nonce := payload[nonceOffset:ksbOffset]
	ad := payload[ksbOffset:keyOffset]

	key, err := getKey(password, salt, 1<<int(logn))
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("failed to start xchacha20poly1305: %w", err)
	}
	aead.Seal(payload[keyOffset:keyOffset], nonce, secretKey, ad)

	bits5, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode("ncryptsec", bits5)
}

// Decrypt opens an ncryptsec string and returns the hex secret key inside.
func Decrypt(bech32string string, password string) (string, error) {
	skb, err := DecryptToBytes(bech32string, password)
	return hex.EncodeToString(skb), err
}

// DecryptToBytes is Decrypt returning the raw 32-byte key.
func DecryptToBytes(bech32string string, password string) ([]byte, error) {
	prefix, bits5, err := bech32.DecodeNoLimit(bech32string)
	if err != nil {
		return nil, err
	}
	if prefix != "ncryptsec" {
		return nil, fmt.Errorf("expected prefix ncryptsec1")
	}

	payload, err := bech32.ConvertBits(bits5, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("failed translating data into 8 bits: %s", err.Error())
	}
	if len(payload) < payloadSize {
		return nil, fmt.Errorf("invalid payload length %d", len(payload))
	}
	if payload[0] != version {
		return nil, fmt.Errorf("expected version 0x02, got %v", payload[0])
	}

	logn := payload[1]
	salt := payload[saltOffset:nonceOffset]
	nonce := payload[nonceOffset:ksbOffset]
	ad := payload[ksbOffset:keyOffset]

	key, err := getKey(password, salt, 1<<int(logn))
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to start xchacha20poly1305: %w", err)
	}
	return aead.Open(nil, nonce, payload[keyOffset:], ad)
}

func getKey(password string, salt []byte, n int) ([]byte, error) {
	// NFKC so visually identical passwords typed on different systems
	// stretch to the same key.
	normalized, _, err := transform.Bytes(norm.NFKC, []byte(password))
	if err != nil {
		return nil, fmt.Errorf("failed to normalize password: %w", err)
	}

	key, err := scrypt.Key(normalized, salt, n, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to compute key with scrypt: %w", err)
	}
	return key, nil
}
