// Package nip44 implements the versioned encrypted payload scheme:
// the ECDH shared secret goes through HKDF before use, plaintexts are
// length-padded and the ciphertext is authenticated with HMAC-SHA256.
package nip44

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/nostrkit/nostr/nip04"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

const version byte = 2

const (
	MinPlaintextSize = 0x0001 // 1b msg => padded to 32b
	MaxPlaintextSize = 0xffff // 65535 (64kb-1) => padded to 64kb
)

type encryptOptions struct {
	err   error
	nonce []byte
}

// WithCustomNonce exists for testing against the reference vectors: never
// use a non-random nonce outside of tests.
func WithCustomNonce(nonce []byte) func(opts *encryptOptions) {
	return func(opts *encryptOptions) {
		if len(nonce) != 32 {
			opts.err = errors.New("nonce must be 32 bytes")
		}
		opts.nonce = nonce
	}
}

// GenerateConversationKey derives the long-lived symmetric key shared between
// the owner of sk and the owner of pub: ECDH then HKDF-extract with the
// scheme's fixed salt. The same key results from either side's perspective.
func GenerateConversationKey(pub string, sk string) ([32]byte, error) {
	var ck [32]byte

	if sk >= "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141" || sk == "0000000000000000000000000000000000000000000000000000000000000000" {
		return ck, fmt.Errorf("invalid private key: x coordinate %s is not on the secp256k1 curve", sk)
	}

	shared, err := nip04.ComputeSharedSecret(pub, sk)
	if err != nil {
		return ck, err
	}

	copy(ck[:], hkdf.Extract(sha256.New, shared, []byte("nip44-v2")))
	return ck, nil
}

// Encrypt encrypts a plaintext of 1 to 65535 bytes with a conversation key,
// returning the versioned base64 payload.
func Encrypt(plaintext string, conversationKey [32]byte, applyOptions ...func(opts *encryptOptions)) (string, error) {
	opts := encryptOptions{}
	for _, apply := range applyOptions {
		apply(&opts)
	}
	if opts.err != nil {
		return "", opts.err
	}

	nonce := opts.nonce
	if nonce == nil {
		nonce = make([]byte, 32)
		if _, err := rand.Read(nonce); err != nil {
			return "", err
		}
	}

	enc, cc20nonce, auth, err := messageKeys(conversationKey, [32]byte(nonce))
	if err != nil {
		return "", err
	}

	padded, err := pad(plaintext)
	if err != nil {
		return "", err
	}

	ciphertext, err := chacha20XOR(enc, cc20nonce, padded)
	if err != nil {
		return "", err
	}

	mac, err := sha256Hmac(auth, ciphertext, nonce)
	if err != nil {
		return "", err
	}

	concat := make([]byte, 0, 1+len(nonce)+len(ciphertext)+len(mac))
	concat = append(concat, version)
	concat = append(concat, nonce...)
	concat = append(concat, ciphertext...)
	concat = append(concat, mac...)

	return base64.StdEncoding.EncodeToString(concat), nil
}

// Decrypt authenticates and decrypts a base64 payload produced by Encrypt.
// It fails closed: unknown version bytes, a wrong hmac or inconsistent
// padding all return an error and no plaintext.
func Decrypt(b64ciphertextWrapped string, conversationKey [32]byte) (string, error) {
	cLen := len(b64ciphertextWrapped)
	if cLen < 132 || cLen > 87472 {
		return "", fmt.Errorf("invalid payload length: %d", cLen)
	}
	if b64ciphertextWrapped[0:1] == "#" {
		return "", errors.New("unknown version")
	}

	decoded, err := base64.StdEncoding.DecodeString(b64ciphertextWrapped)
	if err != nil {
		return "", errors.New("invalid base64")
	}

	if decoded[0] != version {
		return "", fmt.Errorf("unknown version %d", decoded[0])
	}

	dLen := len(decoded)
	if dLen < 99 || dLen > 65603 {
		return "", fmt.Errorf("invalid data length: %d", dLen)
	}

	nonce, ciphertext, givenMac := decoded[1:33], decoded[33:dLen-32], decoded[dLen-32:]
	enc, cc20nonce, auth, err := messageKeys(conversationKey, [32]byte(nonce))
	if err != nil {
		return "", err
	}

	expectedMac, err := sha256Hmac(auth, ciphertext, nonce)
	if err != nil {
		return "", err
	}
	if !hmac.Equal(givenMac, expectedMac) {
		return "", errors.New("invalid hmac")
	}

	padded, err := chacha20XOR(enc, cc20nonce, ciphertext)
	if err != nil {
		return "", err
	}

	unpaddedLen := binary.BigEndian.Uint16(padded[0:2])
	if unpaddedLen < uint16(MinPlaintextSize) || unpaddedLen > uint16(MaxPlaintextSize) ||
		len(padded) != 2+calcPadding(int(unpaddedLen)) {
		return "", errors.New("invalid padding")
	}

	unpadded := padded[2 : int(unpaddedLen)+2]
	if len(unpadded) == 0 || len(unpadded) != int(unpaddedLen) {
		return "", errors.New("invalid padding")
	}

	return string(unpadded), nil
}

func messageKeys(conversationKey [32]byte, nonce [32]byte) (enc []byte, cc20nonce []byte, auth []byte, err error) {
	r := hkdf.Expand(sha256.New, conversationKey[:], nonce[:])

	enc = make([]byte, 32)
	if _, err = io.ReadFull(r, enc); err != nil {
		return nil, nil, nil, err
	}

	cc20nonce = make([]byte, 12)
	if _, err = io.ReadFull(r, cc20nonce); err != nil {
		return nil, nil, nil, err
	}

	auth = make([]byte, 32)
	if _, err = io.ReadFull(r, auth); err != nil {
		return nil, nil, nil, err
	}

	return enc, cc20nonce, auth, nil
}

func chacha20XOR(key []byte, nonce []byte, message []byte) ([]byte, error) {
	cipher, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, len(message))
	cipher.XORKeyStream(dst, message)
	return dst, nil
}

func sha256Hmac(key []byte, ciphertext []byte, aad []byte) ([]byte, error) {
	if len(aad) != 32 {
		return nil, errors.New("aad data must be 32 bytes")
	}
	h := hmac.New(sha256.New, key)
	h.Write(aad)
	h.Write(ciphertext)
	return h.Sum(nil), nil
}

func pad(plaintext string) ([]byte, error) {
	sb := []byte(plaintext)
	sbLen := len(sb)
	if sbLen < MinPlaintextSize || sbLen > MaxPlaintextSize {
		return nil, errors.New("plaintext should be between 1b and 64kB")
	}

	padding := calcPadding(sbLen)
	result := make([]byte, 2, 2+padding)
	binary.BigEndian.PutUint16(result, uint16(sbLen))
	result = append(result, sb...)
	result = append(result, make([]byte, padding-sbLen)...)
	return result, nil
}

func calcPadding(sLen int) int {
	if sLen <= 32 {
		return 32
	}
	nextPower := 1 << int(math.Floor(math.Log2(float64(sLen-1)))+1)
	chunk := int(math.Max(32, float64(nextPower/8)))
	return chunk * int(math.Floor(float64((sLen-1)/chunk))+1)
}
