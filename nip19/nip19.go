// Package nip19 implements the checksummed bech32 text encodings for keys
// and event ids, with distinct prefixes for secret ("nsec") and public
// ("npub") keys so one can never be mistaken for the other.
package nip19

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// EncodePrivateKey encodes a hex secret key as "nsec1...".
func EncodePrivateKey(privateKeyHex string) (string, error) {
	return encode32("nsec", privateKeyHex)
}

// EncodePublicKey encodes a hex public key as "npub1...".
func EncodePublicKey(publicKeyHex string) (string, error) {
	return encode32("npub", publicKeyHex)
}

// EncodeNote encodes a hex event id as "note1...".
func EncodeNote(eventIDHex string) (string, error) {
	return encode32("note", eventIDHex)
}

func encode32(prefix string, hexkey string) (string, error) {
	b, err := hex.DecodeString(hexkey)
	if err != nil {
		return "", fmt.Errorf("failed to decode '%s' as hex: %w", hexkey, err)
	}
	if len(b) != 32 {
		return "", fmt.Errorf("%s value should be 32 bytes, not %d", prefix, len(b))
	}

	bits5, err := bech32.ConvertBits(b, 8, 5, true)
	if err != nil {
		return "", err
	}

	return bech32.Encode(prefix, bits5)
}

// Decode parses any of the encodings produced by this package and returns
// the prefix alongside the hex-encoded 32-byte value. Checksum, charset and
// length failures are all rejected. Callers must check the prefix: an "nsec"
// string decodes fine but is not a public key.
func Decode(bech32string string) (prefix string, value string, err error) {
	prefix, bits5, err := bech32.DecodeNoLimit(bech32string)
	if err != nil {
		return "", "", err
	}

	data, err := bech32.ConvertBits(bits5, 5, 8, false)
	if err != nil {
		return prefix, "", fmt.Errorf("failed translating data into 8 bits: %w", err)
	}

	switch prefix {
	case "npub", "nsec", "note":
		if len(data) < 32 {
			return prefix, "", fmt.Errorf("data is less than 32 bytes (%d)", len(data))
		}
		return prefix, hex.EncodeToString(data[0:32]), nil
	default:
		return prefix, "", fmt.Errorf("unknown prefix '%s'", prefix)
	}
}
