package keyer

import (
	"context"

	"github.com/nostrkit/nostr"
	"github.com/nostrkit/nostr/nip04"
	"github.com/nostrkit/nostr/nip44"
	"github.com/puzpuzpuz/xsync/v3"
)

// KeySigner is a signer that holds the secret key in memory and can do all
// the operations instantly and easily.
type KeySigner struct {
	sk string
	pk string

	conversationKeys *xsync.MapOf[string, [32]byte]
	sharedSecrets    *xsync.MapOf[string, []byte]
}

// NewKeySigner creates a KeySigner from a secret key in hex or nsec form.
func NewKeySigner(sec string) (KeySigner, error) {
	sk, err := nostr.ParseSecretKey(sec)
	if err != nil {
		return KeySigner{}, err
	}
	pk, err := nostr.GetPublicKey(sk)
	if err != nil {
		return KeySigner{}, err
	}
	return KeySigner{
		sk:               sk,
		pk:               pk,
		conversationKeys: xsync.NewMapOf[string, [32]byte](),
		sharedSecrets:    xsync.NewMapOf[string, []byte](),
	}, nil
}

func (ks KeySigner) Backend() nostr.SignerBackend { return nostr.BackendKeys }

func (ks KeySigner) GetPublicKey(ctx context.Context) (string, error) { return ks.pk, nil }

func (ks KeySigner) SignEvent(ctx context.Context, evt *nostr.Event) error {
	return evt.Sign(ks.sk)
}

// Encrypt encrypts a message for the given recipient under NIP-44, caching
// the derived conversation key so repeated messages to the same peer are cheap.
func (ks KeySigner) Encrypt(ctx context.Context, plaintext string, recipient string) (string, error) {
	ck, err := ks.conversationKey(recipient)
	if err != nil {
		return "", err
	}
	return nip44.Encrypt(plaintext, ck)
}

// Decrypt decrypts a NIP-44 payload from the given sender.
func (ks KeySigner) Decrypt(ctx context.Context, base64ciphertext string, sender string) (string, error) {
	ck, err := ks.conversationKey(sender)
	if err != nil {
		return "", err
	}
	return nip44.Decrypt(base64ciphertext, ck)
}

// Encrypt04 encrypts a message for the given recipient under the old NIP-04 scheme.
func (ks KeySigner) Encrypt04(ctx context.Context, plaintext string, recipient string) (string, error) {
	ss, err := ks.sharedSecret(recipient)
	if err != nil {
		return "", err
	}
	return nip04.Encrypt(plaintext, ss)
}

// Decrypt04 decrypts a NIP-04 payload from the given sender.
func (ks KeySigner) Decrypt04(ctx context.Context, ciphertext string, sender string) (string, error) {
	ss, err := ks.sharedSecret(sender)
	if err != nil {
		return "", err
	}
	return nip04.Decrypt(ciphertext, ss)
}

func (ks KeySigner) conversationKey(peer string) ([32]byte, error) {
	if ck, ok := ks.conversationKeys.Load(peer); ok {
		return ck, nil
	}
	ck, err := nip44.GenerateConversationKey(peer, ks.sk)
	if err != nil {
		return [32]byte{}, err
	}
	ks.conversationKeys.Store(peer, ck)
	return ck, nil
}

func (ks KeySigner) sharedSecret(peer string) ([]byte, error) {
	if ss, ok := ks.sharedSecrets.Load(peer); ok {
		return ss, nil
	}
	ss, err := nip04.ComputeSharedSecret(peer, ks.sk)
	if err != nil {
		return nil, err
	}
	ks.sharedSecrets.Store(peer, ss)
	return ss, nil
}
