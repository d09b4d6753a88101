// Package nip06 derives keys deterministically from BIP-39 mnemonics
// following the derivation path registered for this protocol.
package nip06

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// ErrInvalidMnemonic is returned for words that fail the BIP-39 wordlist or
// checksum validation.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// GenerateSeedWords creates a fresh 24-word mnemonic from 256 bits of entropy.
func GenerateSeedWords() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}

	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", err
	}

	return words, nil
}

// ValidateWords checks the mnemonic against the wordlist and its checksum.
func ValidateWords(words string) bool {
	return bip39.IsMnemonicValid(words)
}

// SeedFromWords turns a mnemonic into the binary seed used for derivation,
// with an empty passphrase.
func SeedFromWords(words string) []byte {
	return bip39.NewSeed(words, "")
}

// PrivateKeyFromSeed derives the default key (account 0) from a binary seed.
func PrivateKeyFromSeed(seed []byte) (string, error) {
	return privateKeyFromSeed(seed, 0, 0, 0)
}

// PrivateKeyFromMnemonic derives the default key (account 0) straight from a
// mnemonic, failing closed if the words don't validate.
func PrivateKeyFromMnemonic(words string) (string, error) {
	return PrivateKeyFromMnemonicAdvanced(words, "", 0, 0, 0)
}

// PrivateKeyFromMnemonicAdvanced derives the key at
// m/44'/1237'/account'/typ/index with an optional passphrase. The same
// inputs always yield the same key.
func PrivateKeyFromMnemonicAdvanced(words string, passphrase string, account, typ, index uint32) (string, error) {
	if !bip39.IsMnemonicValid(words) {
		return "", ErrInvalidMnemonic
	}
	return privateKeyFromSeed(bip39.NewSeed(words, passphrase), account, typ, index)
}

func privateKeyFromSeed(seed []byte, account, typ, index uint32) (string, error) {
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return "", fmt.Errorf("failed to derive master key: %w", err)
	}

	// m/44'/1237'/<account>'/<typ>/<index>
	derivationPath := []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + 1237,
		bip32.FirstHardenedChild + account,
		typ,
		index,
	}

	next := key
	for _, idx := range derivationPath {
		var err error
		if next, err = next.NewChildKey(idx); err != nil {
			return "", fmt.Errorf("failed to derive child key %d: %w", idx, err)
		}
	}

	return hex.EncodeToString(next.Key), nil
}
