package keyer

import (
	"context"
	"fmt"

	"github.com/nostrkit/nostr"
)

// ReadOnlySigner has a public key and nothing else, so signing and both
// encryption schemes fail with ErrUnsupported.
type ReadOnlySigner struct {
	pk string
}

// NewReadOnlySigner creates a ReadOnlySigner from a public key in hex or npub form.
func NewReadOnlySigner(pub string) (ReadOnlySigner, error) {
	pk, err := nostr.ParsePublicKey(pub)
	if err != nil {
		return ReadOnlySigner{}, err
	}
	return ReadOnlySigner{pk}, nil
}

func (ros ReadOnlySigner) Backend() nostr.SignerBackend { return nostr.BackendReadOnly }

// GetPublicKey returns the public key associated with this signer.
func (ros ReadOnlySigner) GetPublicKey(context.Context) (string, error) {
	return ros.pk, nil
}

// SignEvent returns an error.
func (ros ReadOnlySigner) SignEvent(context.Context, *nostr.Event) error {
	return fmt.Errorf("%w: read-only, we don't have the secret key, cannot sign", ErrUnsupported)
}

// Encrypt returns an error.
func (ros ReadOnlySigner) Encrypt(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: read-only, we don't have the secret key, cannot encrypt", ErrUnsupported)
}

// Decrypt returns an error.
func (ros ReadOnlySigner) Decrypt(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: read-only, we don't have the secret key, cannot decrypt", ErrUnsupported)
}

// Encrypt04 returns an error.
func (ros ReadOnlySigner) Encrypt04(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: read-only, we don't have the secret key, cannot encrypt", ErrUnsupported)
}

// Decrypt04 returns an error.
func (ros ReadOnlySigner) Decrypt04(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: read-only, we don't have the secret key, cannot decrypt", ErrUnsupported)
}
