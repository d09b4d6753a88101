package keyer

import (
	"context"
	"fmt"

	"github.com/nostrkit/nostr"
	"github.com/nostrkit/nostr/nip04"
	"github.com/nostrkit/nostr/nip44"
	"github.com/nostrkit/nostr/nip49"
)

// EncryptedKeySigner stores the secret key only in its encrypted ncryptsec
// form and asks the user for a password before every operation.
type EncryptedKeySigner struct {
	ncryptsec string
	pk        string
	callback  func(context.Context) string
}

func (es *EncryptedKeySigner) Backend() nostr.SignerBackend { return nostr.BackendEncryptedKeys }

// GetPublicKey returns the public key associated with this signer.
// If the public key is not cached, it will decrypt the private key using the
// password callback to derive the public key.
func (es *EncryptedKeySigner) GetPublicKey(ctx context.Context) (string, error) {
	if es.pk != "" {
		return es.pk, nil
	}
	sk, err := es.key(ctx)
	if err != nil {
		return "", err
	}
	pk, err := nostr.GetPublicKey(sk)
	if err != nil {
		return "", err
	}
	es.pk = pk
	return pk, nil
}

// SignEvent signs the provided event by first decrypting the private key
// using the password callback, then signing the event with the decrypted key.
func (es *EncryptedKeySigner) SignEvent(ctx context.Context, evt *nostr.Event) error {
	sk, err := es.key(ctx)
	if err != nil {
		return err
	}
	if err := evt.Sign(sk); err != nil {
		return err
	}
	es.pk = evt.PubKey
	return nil
}

// Encrypt encrypts a plaintext message for a recipient using NIP-44.
// It first decrypts the private key using the password callback.
func (es *EncryptedKeySigner) Encrypt(ctx context.Context, plaintext string, recipient string) (string, error) {
	sk, err := es.key(ctx)
	if err != nil {
		return "", err
	}
	ck, err := nip44.GenerateConversationKey(recipient, sk)
	if err != nil {
		return "", err
	}
	return nip44.Encrypt(plaintext, ck)
}

// Decrypt decrypts a base64-encoded ciphertext from a sender using NIP-44.
// It first decrypts the private key using the password callback.
func (es *EncryptedKeySigner) Decrypt(ctx context.Context, base64ciphertext string, sender string) (string, error) {
	sk, err := es.key(ctx)
	if err != nil {
		return "", err
	}
	ck, err := nip44.GenerateConversationKey(sender, sk)
	if err != nil {
		return "", err
	}
	return nip44.Decrypt(base64ciphertext, ck)
}

// Encrypt04 is like Encrypt, but for the old NIP-04 scheme.
func (es *EncryptedKeySigner) Encrypt04(ctx context.Context, plaintext string, recipient string) (string, error) {
	sk, err := es.key(ctx)
	if err != nil {
		return "", err
	}
	ss, err := nip04.ComputeSharedSecret(recipient, sk)
	if err != nil {
		return "", err
	}
	return nip04.Encrypt(plaintext, ss)
}

// Decrypt04 is like Decrypt, but for the old NIP-04 scheme.
func (es *EncryptedKeySigner) Decrypt04(ctx context.Context, ciphertext string, sender string) (string, error) {
	sk, err := es.key(ctx)
	if err != nil {
		return "", err
	}
	ss, err := nip04.ComputeSharedSecret(sender, sk)
	if err != nil {
		return "", err
	}
	return nip04.Decrypt(ciphertext, ss)
}

func (es *EncryptedKeySigner) key(ctx context.Context) (string, error) {
	password := es.callback(ctx)
	sk, err := nip49.Decrypt(es.ncryptsec, password)
	if err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}
	return sk, nil
}
