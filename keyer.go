package nostr

import (
	"context"
)

// SignerBackend tags the concrete implementation behind a Keyer so callers
// can decide what to expect from it (a remote signer may be slow or decline
// encryption) without downcasting.
type SignerBackend string

const (
	BackendKeys          SignerBackend = "keys"
	BackendEncryptedKeys SignerBackend = "encrypted-keys"
	BackendRemote        SignerBackend = "remote"
	BackendReadOnly      SignerBackend = "read-only"
	BackendManual        SignerBackend = "manual"
)

// Keyer is an interface for signing events and performing cryptographic
// operations. It abstracts away the details of key management, allowing for
// different implementations such as in-memory keys or remote signing services.
type Keyer interface {
	// Signer provides event signing capabilities
	Signer

	// Cipher provides encryption and decryption capabilities (NIP-44)
	Cipher

	// LegacyCipher provides encryption and decryption under the old scheme (NIP-04)
	LegacyCipher

	// Backend identifies the implementation behind this keyer. It never blocks.
	Backend() SignerBackend
}

// User is an entity that has a public key (although they can't sign anything).
type User interface {
	// GetPublicKey returns the public key associated with this user.
	GetPublicKey(ctx context.Context) (string, error)
}

// Signer is a User that can also sign events.
type Signer interface {
	User

	// SignEvent signs the provided event, setting its ID, PubKey, and Sig fields.
	// The context can be used for operations that may require user interaction or
	// network access, such as with remote signers. On error the event is unchanged.
	SignEvent(ctx context.Context, evt *Event) error
}

// Cipher is an interface for encrypting and decrypting messages with NIP-44,
// the preferred scheme.
type Cipher interface {
	// Encrypt encrypts a plaintext message for a recipient.
	// Returns the encrypted message as a base64-encoded string.
	Encrypt(ctx context.Context, plaintext string, recipientPublicKey string) (base64ciphertext string, err error)

	// Decrypt decrypts a base64-encoded ciphertext from a sender.
	// Returns the decrypted plaintext.
	Decrypt(ctx context.Context, base64ciphertext string, senderPublicKey string) (plaintext string, err error)
}

// LegacyCipher is an interface for encrypting and decrypting messages with
// NIP-04, kept around because old direct messages are still encoded with it.
type LegacyCipher interface {
	// Encrypt04 encrypts a plaintext message for a recipient under NIP-04.
	Encrypt04(ctx context.Context, plaintext string, recipientPublicKey string) (ciphertext string, err error)

	// Decrypt04 decrypts a NIP-04 ciphertext from a sender.
	Decrypt04(ctx context.Context, ciphertext string, senderPublicKey string) (plaintext string, err error)
}
