// Package builder assembles protocol-correct events for each message class
// and finalizes them through a nostr.Signer, optionally mining proof-of-work
// into the id first. Validation happens at construction: a builder that
// exists is structurally valid, the only thing left to fail is signing.
package builder

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/nostrkit/nostr"
	"github.com/nostrkit/nostr/nip02"
	"github.com/nostrkit/nostr/nip04"
	"github.com/nostrkit/nostr/nip13"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventBuilder holds the mutable parts of an event before it is signed.
type EventBuilder struct {
	kind    int
	content string
	tags    nostr.Tags
}

// New creates a builder for any kind, checking every tag's shape against the
// grammar of its name. The error names the offending tag.
func New(kind int, content string, tags nostr.Tags) (EventBuilder, error) {
	for _, tag := range tags {
		if err := tag.Validate(); err != nil {
			return EventBuilder{}, fmt.Errorf("tag %v: %w", tag, err)
		}
	}
	return EventBuilder{kind: kind, content: content, tags: tags}, nil
}

func (b EventBuilder) Kind() int        { return b.kind }
func (b EventBuilder) Content() string  { return b.content }
func (b EventBuilder) Tags() nostr.Tags { return b.tags }

// Unsigned materializes the builder into an event authored by pubkey,
// stamped with the current time and not yet signed.
func (b EventBuilder) Unsigned(pubkey string) nostr.Event {
	tags := b.tags
	if tags == nil {
		tags = make(nostr.Tags, 0)
	}
	return nostr.Event{
		PubKey:    pubkey,
		CreatedAt: nostr.Now(),
		Kind:      b.kind,
		Tags:      tags,
		Content:   b.content,
	}
}

// ToEvent finalizes the builder: it fetches the signer's public key, stamps
// the creation time, computes the id and signs it. Either a fully signed
// event comes back or an error.
func (b EventBuilder) ToEvent(ctx context.Context, signer nostr.Signer) (*nostr.Event, error) {
	pk, err := signer.GetPublicKey(ctx)
	if err != nil {
		return nil, err
	}

	evt := b.Unsigned(pk)
	if err := signer.SignEvent(ctx, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}

// ToPowEvent is ToEvent with proof-of-work: before signing it mines a nonce
// tag until the id has at least difficulty leading zero bits. Mining is
// CPU-bound and unbounded (expected attempts double per difficulty bit), the
// only way out besides success is cancelling ctx. Zero difficulty skips
// mining entirely.
func (b EventBuilder) ToPowEvent(ctx context.Context, signer nostr.Signer, difficulty int) (*nostr.Event, error) {
	pk, err := signer.GetPublicKey(ctx)
	if err != nil {
		return nil, err
	}

	evt := b.Unsigned(pk)
	if difficulty > 0 {
		if _, err := nip13.GenerateWithContext(ctx, &evt, difficulty); err != nil {
			return nil, err
		}
	}

	if err := signer.SignEvent(ctx, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}

// Metadata creates a kind-0 profile metadata replacement.
func Metadata(meta nostr.ProfileMetadata) EventBuilder {
	return EventBuilder{kind: nostr.KindProfileMetadata, content: meta.String()}
}

// RecommendRelay creates a kind-2 relay recommendation.
func RecommendRelay(url string) (EventBuilder, error) {
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		return EventBuilder{}, fmt.Errorf("'%s' is not a websocket relay url", url)
	}
	return EventBuilder{kind: nostr.KindRecommendServer, content: url}, nil
}

// TextNote creates a kind-1 plain text note.
func TextNote(content string, tags nostr.Tags) (EventBuilder, error) {
	return New(nostr.KindTextNote, content, tags)
}

// LongFormTextNote creates a kind-30023 long-form article.
func LongFormTextNote(content string, tags nostr.Tags) (EventBuilder, error) {
	return New(nostr.KindArticle, content, tags)
}

// ContactList creates a kind-3 event replacing the author's whole contact list.
func ContactList(contacts []nip02.Contact) (EventBuilder, error) {
	tags := nip02.ToTags(contacts)
	for _, tag := range tags {
		if err := tag.Validate(); err != nil {
			return EventBuilder{}, fmt.Errorf("contact %s: %w", tag[1], err)
		}
	}
	return EventBuilder{kind: nostr.KindContactList, tags: tags}, nil
}

// EncryptedDirectMessage creates a kind-4 direct message: the content is
// NIP-04-encrypted to the receiver right here, at build time, so the
// plaintext never sits in a builder. replyTo is an optional id of the
// message being answered.
func EncryptedDirectMessage(senderSecretKey string, receiverPubKey string, content string, replyTo string) (EventBuilder, error) {
	pk, err := nostr.ParsePublicKey(receiverPubKey)
	if err != nil {
		return EventBuilder{}, err
	}

	ss, err := nip04.ComputeSharedSecret(pk, senderSecretKey)
	if err != nil {
		return EventBuilder{}, err
	}
	encrypted, err := nip04.Encrypt(content, ss)
	if err != nil {
		return EventBuilder{}, err
	}

	tags := nostr.Tags{{"p", pk}}
	if replyTo != "" {
		if !nostr.IsValid32ByteHex(replyTo) {
			return EventBuilder{}, fmt.Errorf("replyTo '%s' is not a valid event id", replyTo)
		}
		tags = append(tags, nostr.Tag{"e", replyTo})
	}

	return EventBuilder{kind: nostr.KindEncryptedDirectMessage, content: encrypted, tags: tags}, nil
}

// Repost creates a kind-6 repost of someone else's event.
func Repost(eventID string, authorPubKey string) (EventBuilder, error) {
	if !nostr.IsValid32ByteHex(eventID) {
		return EventBuilder{}, fmt.Errorf("'%s' is not a valid event id", eventID)
	}
	pk, err := nostr.ParsePublicKey(authorPubKey)
	if err != nil {
		return EventBuilder{}, err
	}
	return EventBuilder{
		kind: nostr.KindRepost,
		tags: nostr.Tags{{"e", eventID}, {"p", pk}},
	}, nil
}

// Delete creates a kind-5 request asking relays to drop the given events,
// with an optional human-readable reason as the content.
func Delete(ids []string, reason string) (EventBuilder, error) {
	if len(ids) == 0 {
		return EventBuilder{}, fmt.Errorf("nothing to delete")
	}
	tags := make(nostr.Tags, len(ids))
	for i, id := range ids {
		if !nostr.IsValid32ByteHex(id) {
			return EventBuilder{}, fmt.Errorf("'%s' is not a valid event id", id)
		}
		tags[i] = nostr.Tag{"e", id}
	}
	return EventBuilder{kind: nostr.KindDeletion, content: reason, tags: tags}, nil
}

// Reaction creates a kind-7 reaction to an event: "+", "-" or an emoji.
func Reaction(eventID string, authorPubKey string, content string) (EventBuilder, error) {
	if !nostr.IsValid32ByteHex(eventID) {
		return EventBuilder{}, fmt.Errorf("'%s' is not a valid event id", eventID)
	}
	pk, err := nostr.ParsePublicKey(authorPubKey)
	if err != nil {
		return EventBuilder{}, err
	}
	return EventBuilder{
		kind:    nostr.KindReaction,
		content: content,
		tags:    nostr.Tags{{"e", eventID}, {"p", pk}},
	}, nil
}

// Channel creates a kind-40 public chat channel with the given metadata.
func Channel(meta nostr.ProfileMetadata) EventBuilder {
	return EventBuilder{kind: nostr.KindChannelCreation, content: meta.String()}
}

// ChannelMetadata creates a kind-41 update of a channel's metadata.
// relayURL, when given, hints where the channel creation event lives.
func ChannelMetadata(channelID string, relayURL string, meta nostr.ProfileMetadata) (EventBuilder, error) {
	if !nostr.IsValid32ByteHex(channelID) {
		return EventBuilder{}, fmt.Errorf("'%s' is not a valid channel id", channelID)
	}
	return EventBuilder{
		kind:    nostr.KindChannelMetadata,
		content: meta.String(),
		tags:    nostr.Tags{{"e", channelID, relayURL}},
	}, nil
}

// ChannelMessage creates a kind-42 message in a channel.
func ChannelMessage(channelID string, relayURL string, content string) (EventBuilder, error) {
	if !nostr.IsValid32ByteHex(channelID) {
		return EventBuilder{}, fmt.Errorf("'%s' is not a valid channel id", channelID)
	}
	return EventBuilder{
		kind:    nostr.KindChannelMessage,
		content: content,
		tags:    nostr.Tags{{"e", channelID, relayURL, "root"}},
	}, nil
}

// HideChannelMessage creates a kind-43 request to hide a channel message,
// with an optional reason.
func HideChannelMessage(messageID string, reason string) (EventBuilder, error) {
	if !nostr.IsValid32ByteHex(messageID) {
		return EventBuilder{}, fmt.Errorf("'%s' is not a valid event id", messageID)
	}
	return EventBuilder{
		kind:    nostr.KindChannelHideMessage,
		content: reasonContent(reason),
		tags:    nostr.Tags{{"e", messageID}},
	}, nil
}

// MuteChannelUser creates a kind-44 request to mute a user in channels,
// with an optional reason.
func MuteChannelUser(pubkey string, reason string) (EventBuilder, error) {
	pk, err := nostr.ParsePublicKey(pubkey)
	if err != nil {
		return EventBuilder{}, err
	}
	return EventBuilder{
		kind:    nostr.KindChannelMuteUser,
		content: reasonContent(reason),
		tags:    nostr.Tags{{"p", pk}},
	}, nil
}

func reasonContent(reason string) string {
	if reason == "" {
		return ""
	}
	j, _ := json.Marshal(struct {
		Reason string `json:"reason"`
	}{reason})
	return string(j)
}
