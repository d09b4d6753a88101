package keyer

import (
	"context"

	"github.com/nostrkit/nostr"
)

// ManualSigner is a signer that delegates all operations to user-provided
// functions. It can be used when an app wants to ask the user or some custom
// server to manually provide a signed event or an encrypted or decrypted
// payload by copy-and-paste, for example, or when the app wants to implement
// custom signing logic. Unset callbacks make the operation fail with
// ErrUnsupported.
type ManualSigner struct {
	// ManualGetPublicKey is called when the public key is needed
	ManualGetPublicKey func(context.Context) (string, error)

	// ManualSignEvent is called when an event needs to be signed
	ManualSignEvent func(context.Context, *nostr.Event) error

	// ManualEncrypt is called when a message needs to be encrypted (NIP-44)
	ManualEncrypt func(ctx context.Context, plaintext string, recipientPublicKey string) (base64ciphertext string, err error)

	// ManualDecrypt is called when a message needs to be decrypted (NIP-44)
	ManualDecrypt func(ctx context.Context, base64ciphertext string, senderPublicKey string) (plaintext string, err error)

	// ManualEncrypt04 is called when a message needs to be encrypted under NIP-04
	ManualEncrypt04 func(ctx context.Context, plaintext string, recipientPublicKey string) (ciphertext string, err error)

	// ManualDecrypt04 is called when a message needs to be decrypted under NIP-04
	ManualDecrypt04 func(ctx context.Context, ciphertext string, senderPublicKey string) (plaintext string, err error)
}

func (ms ManualSigner) Backend() nostr.SignerBackend { return nostr.BackendManual }

// GetPublicKey delegates public key retrieval to the ManualGetPublicKey function.
func (ms ManualSigner) GetPublicKey(ctx context.Context) (string, error) {
	if ms.ManualGetPublicKey == nil {
		return "", ErrUnsupported
	}
	return ms.ManualGetPublicKey(ctx)
}

// SignEvent delegates event signing to the ManualSignEvent function.
func (ms ManualSigner) SignEvent(ctx context.Context, evt *nostr.Event) error {
	if ms.ManualSignEvent == nil {
		return ErrUnsupported
	}
	return ms.ManualSignEvent(ctx, evt)
}

// Encrypt delegates encryption to the ManualEncrypt function.
func (ms ManualSigner) Encrypt(ctx context.Context, plaintext string, recipient string) (string, error) {
	if ms.ManualEncrypt == nil {
		return "", ErrUnsupported
	}
	return ms.ManualEncrypt(ctx, plaintext, recipient)
}

// Decrypt delegates decryption to the ManualDecrypt function.
func (ms ManualSigner) Decrypt(ctx context.Context, base64ciphertext string, sender string) (string, error) {
	if ms.ManualDecrypt == nil {
		return "", ErrUnsupported
	}
	return ms.ManualDecrypt(ctx, base64ciphertext, sender)
}

// Encrypt04 delegates encryption to the ManualEncrypt04 function.
func (ms ManualSigner) Encrypt04(ctx context.Context, plaintext string, recipient string) (string, error) {
	if ms.ManualEncrypt04 == nil {
		return "", ErrUnsupported
	}
	return ms.ManualEncrypt04(ctx, plaintext, recipient)
}

// Decrypt04 delegates decryption to the ManualDecrypt04 function.
func (ms ManualSigner) Decrypt04(ctx context.Context, ciphertext string, sender string) (string, error) {
	if ms.ManualDecrypt04 == nil {
		return "", ErrUnsupported
	}
	return ms.ManualDecrypt04(ctx, ciphertext, sender)
}
