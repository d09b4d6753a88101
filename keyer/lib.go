// Package keyer provides the signer backends: in-memory keys, encrypted
// keys behind a password prompt, a read-only public key, fully manual
// callbacks, and a remote signing service behind a caller-supplied
// transport. All of them satisfy nostr.Keyer.
package keyer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nostrkit/nostr"
	"github.com/nostrkit/nostr/nip49"
)

var (
	_ nostr.Keyer = (*KeySigner)(nil)
	_ nostr.Keyer = (*EncryptedKeySigner)(nil)
	_ nostr.Keyer = (*RemoteSigner)(nil)
	_ nostr.Keyer = (*ManualSigner)(nil)
	_ nostr.Keyer = (*ReadOnlySigner)(nil)
)

// ErrUnsupported is returned when a backend doesn't have the capability for
// an operation, like encrypting without access to a secret key. Callers can
// check for it to distinguish "can't ever" from "failed this time".
var ErrUnsupported = errors.New("operation not supported by this signer backend")

// SignerOptions contains configuration options for creating a new signer.
type SignerOptions struct {
	// PasswordHandler is called when an operation needs access to the encrypted key.
	// If provided, the key will be stored encrypted and this function will be called
	// every time an operation needs access to the key so the user can be prompted.
	PasswordHandler func(context.Context) string

	// Password is used along with ncryptsec to decrypt the key.
	// If provided, the key will be decrypted and stored in plaintext.
	Password string
}

// New creates a Keyer implementation based on the input string format:
//   - ncryptsec: an EncryptedKeySigner or KeySigner depending on options
//   - nsec or hex secret key: a KeySigner
//
// Remote signers are not constructed from a string, use NewRemoteSigner.
func New(ctx context.Context, input string, opts *SignerOptions) (nostr.Keyer, error) {
	if opts == nil {
		opts = &SignerOptions{}
	}

	if strings.HasPrefix(input, "ncryptsec1") {
		if opts.PasswordHandler != nil {
			return &EncryptedKeySigner{input, "", opts.PasswordHandler}, nil
		}
		sec, err := nip49.Decrypt(input, opts.Password)
		if err != nil {
			if opts.Password == "" {
				return nil, fmt.Errorf("failed to decrypt with blank password: %w", err)
			}
			return nil, fmt.Errorf("failed to decrypt with given password: %w", err)
		}
		ks, err := NewKeySigner(sec)
		if err != nil {
			return nil, err
		}
		return ks, nil
	}

	if sec, err := nostr.ParseSecretKey(input); err == nil {
		ks, err := NewKeySigner(sec)
		if err != nil {
			return nil, err
		}
		return ks, nil
	}

	return nil, fmt.Errorf("unsupported input '%s'", input)
}
