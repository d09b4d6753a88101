package keyer

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
	"github.com/nostrkit/nostr"
	"github.com/tidwall/gjson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Transport carries a single signer request to a remote signing service and
// returns its reply. How the bytes travel (a relay round trip, a pipe, a
// local socket) is up to the implementation; RoundTrip must not return until
// a reply arrives, an error happens or ctx is done.
type Transport interface {
	RoundTrip(ctx context.Context, request []byte) (response []byte, err error)
}

// RemoteSigner delegates every operation to an external signing service
// through a Transport, speaking the nostr-connect request/response shape:
// {"id","method","params"} out, {"id","result","error"} back. The remote
// holds the secret key; this side never sees it, so any of the operations
// may come back declined.
type RemoteSigner struct {
	transport Transport
	serial    atomic.Uint64

	pkMutex sync.Mutex
	pk      string // cached after the first get_public_key
}

// NewRemoteSigner creates a RemoteSigner that will talk through the given transport.
func NewRemoteSigner(transport Transport) *RemoteSigner {
	return &RemoteSigner{transport: transport}
}

func (rs *RemoteSigner) Backend() nostr.SignerBackend { return nostr.BackendRemote }

type remoteRequest struct {
	ID     string   `json:"id"`
	Method string   `json:"method"`
	Params []string `json:"params"`
}

func (rs *RemoteSigner) call(ctx context.Context, method string, params ...string) (string, error) {
	req, err := json.Marshal(remoteRequest{
		ID:     strconv.FormatUint(rs.serial.Add(1), 10),
		Method: method,
		Params: params,
	})
	if err != nil {
		return "", err
	}

	resp, err := rs.transport.RoundTrip(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", method, err)
	}

	parsed := gjson.ParseBytes(resp)
	if errmsg := parsed.Get("error"); errmsg.Exists() && errmsg.String() != "" {
		return "", fmt.Errorf("remote signer refused %s: %s", method, errmsg.String())
	}
	result := parsed.Get("result")
	if !result.Exists() {
		return "", fmt.Errorf("remote signer returned no result for %s", method)
	}
	return result.String(), nil
}

// GetPublicKey asks the remote service for its public key once and caches it.
// The lock is held across the round trip so concurrent callers coalesce into
// a single request.
func (rs *RemoteSigner) GetPublicKey(ctx context.Context) (string, error) {
	rs.pkMutex.Lock()
	defer rs.pkMutex.Unlock()
	if rs.pk != "" {
		return rs.pk, nil
	}
	result, err := rs.call(ctx, "get_public_key")
	if err != nil {
		return "", err
	}
	pk, err := nostr.ParsePublicKey(result)
	if err != nil {
		return "", fmt.Errorf("remote signer returned a bad public key: %w", err)
	}
	rs.pk = pk
	return pk, nil
}

// SignEvent sends the unsigned event to the remote service and copies the
// fully signed result back into evt. On any failure evt is left untouched.
func (rs *RemoteSigner) SignEvent(ctx context.Context, evt *nostr.Event) error {
	unsigned, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	result, err := rs.call(ctx, "sign_event", string(unsigned))
	if err != nil {
		return err
	}

	var signed nostr.Event
	if err := json.Unmarshal([]byte(result), &signed); err != nil {
		return fmt.Errorf("remote signer returned a bad event: %w", err)
	}
	if !signed.CheckID() {
		return fmt.Errorf("remote signer returned an event with a bogus id")
	}
	if ok, err := signed.CheckSignature(); !ok {
		return fmt.Errorf("remote signer returned an event with an invalid signature: %w", err)
	}

	*evt = signed
	return nil
}

// Encrypt asks the remote service to NIP-44-encrypt plaintext for a recipient.
func (rs *RemoteSigner) Encrypt(ctx context.Context, plaintext string, recipient string) (string, error) {
	return rs.call(ctx, "nip44_encrypt", recipient, plaintext)
}

// Decrypt asks the remote service to NIP-44-decrypt a payload from a sender.
func (rs *RemoteSigner) Decrypt(ctx context.Context, base64ciphertext string, sender string) (string, error) {
	return rs.call(ctx, "nip44_decrypt", sender, base64ciphertext)
}

// Encrypt04 asks the remote service to NIP-04-encrypt plaintext for a recipient.
func (rs *RemoteSigner) Encrypt04(ctx context.Context, plaintext string, recipient string) (string, error) {
	return rs.call(ctx, "nip04_encrypt", recipient, plaintext)
}

// Decrypt04 asks the remote service to NIP-04-decrypt a payload from a sender.
func (rs *RemoteSigner) Decrypt04(ctx context.Context, ciphertext string, sender string) (string, error) {
	return rs.call(ctx, "nip04_decrypt", sender, ciphertext)
}
