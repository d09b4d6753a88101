package nostr

import (
	"errors"
	"iter"
	"slices"
)

// Tag is an ordered sequence of strings with position-dependent meaning:
// the first item is the tag name, the second is usually its value.
type Tag []string

// Clone creates a new tag with the same items.
func (tag Tag) Clone() Tag {
	clone := make(Tag, len(tag))
	copy(clone, tag)
	return clone
}

type Tags []Tag

// GetD gets the first "d" tag (for addressable events) value or "".
func (tags Tags) GetD() string {
	for _, v := range tags {
		if len(v) >= 2 && v[0] == "d" {
			return v[1]
		}
	}
	return ""
}

// Find returns the first tag with the given name that also has a value
// (i.e. at least 2 items).
func (tags Tags) Find(name string) Tag {
	for _, v := range tags {
		if len(v) >= 2 && v[0] == name {
			return v
		}
	}
	return nil
}

// FindAll yields every tag with the given name that also has a value.
func (tags Tags) FindAll(name string) iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		for _, v := range tags {
			if len(v) >= 2 && v[0] == name {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// FindWithValue is like Find, but also requires the value (the second item) to match.
func (tags Tags) FindWithValue(name, value string) Tag {
	for _, v := range tags {
		if len(v) >= 2 && v[1] == value && v[0] == name {
			return v
		}
	}
	return nil
}

// FindLast is like Find, but starts at the end.
func (tags Tags) FindLast(name string) Tag {
	for i := len(tags) - 1; i >= 0; i-- {
		v := tags[i]
		if len(v) >= 2 && v[0] == name {
			return v
		}
	}
	return nil
}

// ContainsAny returns true if any tag with the given name has one of the given values.
func (tags Tags) ContainsAny(name string, values []string) bool {
	for _, tag := range tags {
		if len(tag) < 2 {
			continue
		}
		if tag[0] != name {
			continue
		}
		if slices.Contains(values, tag[1]) {
			return true
		}
	}
	return false
}

// Clone creates a new array with the same tags inside (the tags themselves
// are shared, use CloneDeep if they will be mutated).
func (tags Tags) Clone() Tags {
	clone := make(Tags, len(tags))
	copy(clone, tags)
	return clone
}

// CloneDeep creates a new array with clones of the tags inside.
func (tags Tags) CloneDeep() Tags {
	clone := make(Tags, len(tags))
	for i := range clone {
		clone[i] = tags[i].Clone()
	}
	return clone
}

// ErrInvalidTagShape is returned when a tag fails Validate.
var ErrInvalidTagShape = errors.New("invalid tag shape")

// Validate checks the shape of a tag against the grammar of its name:
// tags that reference events, pubkeys or delegations must carry a valid
// 32-byte hex value in position 1. Unknown tag names only need a non-empty
// name. This runs at construction time so a built event is never malformed.
func (tag Tag) Validate() error {
	if len(tag) == 0 || tag[0] == "" {
		return ErrInvalidTagShape
	}
	switch tag[0] {
	case "e", "p", "q", "delegation":
		if len(tag) < 2 || !IsValid32ByteHex(tag[1]) {
			return ErrInvalidTagShape
		}
	case "a":
		if len(tag) < 2 || tag[1] == "" {
			return ErrInvalidTagShape
		}
	}
	return nil
}

// marshalTo appends the JSON encoded tags to dst.
func (tags Tags) marshalTo(dst []byte) []byte {
	dst = append(dst, '[')
	for i, tag := range tags {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '[')
		for j, s := range tag {
			if j > 0 {
				dst = append(dst, ',')
			}
			dst = escapeString(dst, s)
		}
		dst = append(dst, ']')
	}
	dst = append(dst, ']')
	return dst
}
