package nostr

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"lukechampine.com/frand"
)

// ErrNoMatch is returned when a vanity search ends without finding a key,
// which only happens when the caller cancels the context.
var ErrNoMatch = errors.New("no matching key found")

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// VanityKey brute-forces secret keys until the textual encoding of the
// derived public key starts with one of the given prefixes, and returns the
// winning secret key in hex. With useBech32 the prefixes are matched against
// the characters following "npub1", otherwise against the hex public key.
//
// workerCount goroutines race independently over random keys; whichever finds
// a match first wins and the rest are cancelled, so which prefix hits first is
// nondeterministic. The search is unbounded: it returns ErrNoMatch only when
// ctx is cancelled.
func VanityKey(ctx context.Context, prefixes []string, useBech32 bool, workerCount uint8) (string, error) {
	if len(prefixes) == 0 {
		return "", fmt.Errorf("%w: no prefixes given", ErrNoMatch)
	}
	charset := "0123456789abcdef"
	if useBech32 {
		charset = bech32Charset
	}
	for _, prefix := range prefixes {
		for _, c := range prefix {
			if !strings.ContainsRune(charset, c) {
				return "", fmt.Errorf("%w: prefix '%s' contains '%c', impossible to match", ErrNoMatch, prefix, c)
			}
		}
	}
	if workerCount == 0 {
		workerCount = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	found := make(chan string, 1)
	for i := uint8(0); i < workerCount; i++ {
		go vanityWorker(ctx, prefixes, useBech32, found)
	}

	select {
	case sk := <-found:
		return sk, nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrNoMatch, context.Cause(ctx))
	}
}

func vanityWorker(ctx context.Context, prefixes []string, useBech32 bool, found chan<- string) {
	rng := frand.New()
	skb := make([]byte, 32)
	done := ctx.Done()

	for {
		select {
		case <-done:
			return
		default:
		}

		rng.Read(skb)
		sk := secp256k1.PrivKeyFromBytes(skb)
		if sk.Key.IsZero() {
			continue
		}

		serialized := sk.PubKey().SerializeCompressed()
		var encoded string
		if useBech32 {
			bits5, err := bech32.ConvertBits(serialized[1:], 8, 5, true)
			if err != nil {
				continue
			}
			npub, err := bech32.Encode("npub", bits5)
			if err != nil {
				continue
			}
			encoded = npub[len("npub1"):]
		} else {
			encoded = hex.EncodeToString(serialized[1:])
		}

		if ContainsPrefixOf(prefixes, encoded) {
			// non-blocking: only the first worker's result is kept
			select {
			case found <- hex.EncodeToString(sk.Serialize()):
			default:
			}
			return
		}
	}
}
