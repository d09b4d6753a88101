// Package nip02 has the types for contact lists: kind-3 events whose "p"
// tags carry the full set of followed keys, each optionally with a relay
// hint and a petname. Every published contact list replaces the previous
// one entirely.
package nip02

import (
	"fmt"

	"github.com/nostrkit/nostr"
)

// Contact is one followed key.
type Contact struct {
	PubKey  string
	Relay   string
	Petname string
}

// Tag turns the contact into the "p" tag shape used inside kind-3 events.
func (c Contact) Tag() nostr.Tag {
	return nostr.Tag{"p", c.PubKey, c.Relay, c.Petname}
}

// ToTags converts a full contact list into event tags.
func ToTags(contacts []Contact) nostr.Tags {
	tags := make(nostr.Tags, len(contacts))
	for i, c := range contacts {
		tags[i] = c.Tag()
	}
	return tags
}

// ParseContacts extracts the contact list out of a kind-3 event.
func ParseContacts(evt nostr.Event) ([]Contact, error) {
	if evt.Kind != nostr.KindContactList {
		return nil, fmt.Errorf("event %s is kind %d, not %d", evt.ID, evt.Kind, nostr.KindContactList)
	}

	contacts := make([]Contact, 0, len(evt.Tags))
	for tag := range evt.Tags.FindAll("p") {
		c := Contact{PubKey: tag[1]}
		if len(tag) > 2 {
			c.Relay = tag[2]
		}
		if len(tag) > 3 {
			c.Petname = tag[3]
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}
