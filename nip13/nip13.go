// Package nip13 implements proof-of-work mining over event ids.
// See https://github.com/nostr-protocol/nips/blob/master/13.md for details.
package nip13

import (
	"context"
	"encoding/hex"
	"errors"
	"math/bits"
	"strconv"

	nostr "github.com/nostrkit/nostr"
)

// ErrDifficultyTooLow is returned by Check for ids below the target difficulty.
var ErrDifficultyTooLow = errors.New("nip13: insufficient difficulty")

// Difficulty counts the number of leading zero bits in an event ID.
func Difficulty(id string) int {
	var zeros int
	var b [1]byte
	for i := 0; i < 64; i += 2 {
		if id[i:i+2] == "00" {
			zeros += 8
			continue
		}
		if _, err := hex.Decode(b[:], []byte{id[i], id[i+1]}); err != nil {
			return -1
		}
		zeros += bits.LeadingZeros8(b[0])
		break
	}
	return zeros
}

// Check reports whether the event ID demonstrates a sufficient proof of work difficulty.
// Note that Check performs no validation other than counting leading zero bits
// in an event ID. It is up to the callers to verify the event with other methods,
// such as [nostr.Event.CheckSignature].
func Check(id string, minDifficulty int) error {
	if Difficulty(id) < minDifficulty {
		return ErrDifficultyTooLow
	}
	return nil
}

// Generate mines a "nonce" tag into the event until its id has at least
// targetDifficulty leading zero bits, mutating Tags in place. The search is
// single-threaded, CPU-bound and unbounded: expected work is about
// 2^targetDifficulty id computations, it is on the caller to pick a
// difficulty compatible with their latency budget (or use
// [GenerateWithContext]). A difficulty of zero returns immediately.
func Generate(event *nostr.Event, targetDifficulty int) *nostr.Event {
	if targetDifficulty == 0 {
		return event
	}
	event, _ = GenerateWithContext(context.Background(), event, targetDifficulty)
	return event
}

// GenerateWithContext is Generate with cooperative cancellation, checked
// every few thousand nonces so the hot loop stays tight. Success semantics
// are identical to Generate.
func GenerateWithContext(ctx context.Context, event *nostr.Event, targetDifficulty int) (*nostr.Event, error) {
	if targetDifficulty == 0 {
		return event, nil
	}

	tag := nostr.Tag{"nonce", "", strconv.Itoa(targetDifficulty)}
	event.Tags = append(event.Tags, tag)

	var nonce uint64
	for {
		nonce++
		tag[1] = strconv.FormatUint(nonce, 10)
		if Difficulty(event.GetID()) >= targetDifficulty {
			return event, nil
		}
		if nonce%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
}
