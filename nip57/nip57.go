// Package nip57 builds zap requests: kind-9734 events a wallet sends to a
// lightning provider to ask that a payment be receipted on relays.
package nip57

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/nostrkit/nostr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ZapType selects how much the zap reveals about the sender.
type ZapType int

const (
	// Public zaps are signed by the sender's own key.
	Public ZapType = iota
	// Private zaps are signed by a throwaway key, with the sender's note
	// encrypted so only the recipient can read it.
	Private
	// Anonymous zaps are signed by a throwaway key and carry no sender data.
	Anonymous
)

// ZapRequestData collects everything that goes into a zap request. It is an
// immutable value: the With* methods return updated copies, so a base value
// can be reused safely across zaps.
type ZapRequestData struct {
	recipient string
	relays    []string
	zapType   ZapType
	amount    uint64 // millisatoshis, 0 means unset
	lnurl     string
	eventID   string
}

// NewZapRequestData starts a zap request to a recipient (hex or npub), to be
// receipted on the given relays.
func NewZapRequestData(recipientPubKey string, relays []string, zapType ZapType) (ZapRequestData, error) {
	pk, err := nostr.ParsePublicKey(recipientPubKey)
	if err != nil {
		return ZapRequestData{}, err
	}
	if len(relays) == 0 {
		return ZapRequestData{}, fmt.Errorf("at least one relay is required for the zap receipt")
	}
	return ZapRequestData{recipient: pk, relays: relays, zapType: zapType}, nil
}

// WithAmount returns a copy carrying the amount in millisatoshis.
func (z ZapRequestData) WithAmount(millisats uint64) ZapRequestData {
	z.amount = millisats
	return z
}

// WithLnurl returns a copy carrying the recipient's lnurl pay descriptor.
func (z ZapRequestData) WithLnurl(lnurl string) ZapRequestData {
	z.lnurl = lnurl
	return z
}

// WithEventID returns a copy referencing the event being zapped.
func (z ZapRequestData) WithEventID(eventID string) (ZapRequestData, error) {
	if !nostr.IsValid32ByteHex(eventID) {
		return ZapRequestData{}, fmt.Errorf("'%s' is not a valid event id", eventID)
	}
	z.eventID = eventID
	return z, nil
}

// Tags produces the zap request tags for this data.
func (z ZapRequestData) Tags() nostr.Tags {
	tags := nostr.Tags{
		append(nostr.Tag{"relays"}, z.relays...),
		{"p", z.recipient},
	}
	if z.eventID != "" {
		tags = append(tags, nostr.Tag{"e", z.eventID})
	}
	if z.amount > 0 {
		tags = append(tags, nostr.Tag{"amount", strconv.FormatUint(z.amount, 10)})
	}
	if z.lnurl != "" {
		tags = append(tags, nostr.Tag{"lnurl", z.lnurl})
	}
	return tags
}

// CreateZapRequest builds and signs the kind-9734 event for this data.
// Public zaps are signed by the given signer; private and anonymous ones by
// a fresh throwaway key, so nothing links them to the signer's identity on
// relays. For private zaps the message is encrypted to the recipient through
// the signer's cipher capability, which may be declined by backends that
// can't encrypt.
func CreateZapRequest(ctx context.Context, data ZapRequestData, signer nostr.Keyer, message string) (*nostr.Event, error) {
	tags := data.Tags()

	switch data.zapType {
	case Public:
		evt := nostr.Event{
			CreatedAt: nostr.Now(),
			Kind:      nostr.KindZapRequest,
			Tags:      tags,
			Content:   message,
		}
		pk, err := signer.GetPublicKey(ctx)
		if err != nil {
			return nil, err
		}
		evt.PubKey = pk
		if err := signer.SignEvent(ctx, &evt); err != nil {
			return nil, err
		}
		return &evt, nil

	case Anonymous:
		evt := nostr.Event{
			CreatedAt: nostr.Now(),
			Kind:      nostr.KindZapRequest,
			Tags:      append(tags, nostr.Tag{"anon"}),
			Content:   message,
		}
		if err := evt.Sign(nostr.GeneratePrivateKey()); err != nil {
			return nil, err
		}
		return &evt, nil

	case Private:
		pk, err := signer.GetPublicKey(ctx)
		if err != nil {
			return nil, err
		}
		inner := struct {
			PubKey  string `json:"pubkey"`
			Content string `json:"content"`
		}{PubKey: pk, Content: message}
		innerJSON, err := json.Marshal(inner)
		if err != nil {
			return nil, err
		}
		encrypted, err := signer.Encrypt04(ctx, string(innerJSON), data.recipient)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt private zap note: %w", err)
		}

		evt := nostr.Event{
			CreatedAt: nostr.Now(),
			Kind:      nostr.KindZapRequest,
			Tags:      append(tags, nostr.Tag{"anon", encrypted}),
		}
		if err := evt.Sign(nostr.GeneratePrivateKey()); err != nil {
			return nil, err
		}
		return &evt, nil

	default:
		return nil, fmt.Errorf("unknown zap type %d", data.zapType)
	}
}

// DescriptionHash is the sha256 commitment of a serialized zap request that
// goes into the lnurl invoice.
func DescriptionHash(zapEventJSON string) string {
	hash := sha256.Sum256([]byte(zapEventJSON))
	return hex.EncodeToString(hash[:])
}
