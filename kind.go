package nostr

// Event kinds, as assigned by the protocol.
const (
	KindProfileMetadata        int = 0
	KindTextNote               int = 1
	KindRecommendServer        int = 2
	KindContactList            int = 3
	KindEncryptedDirectMessage int = 4
	KindDeletion               int = 5
	KindRepost                 int = 6
	KindReaction               int = 7
	KindChannelCreation        int = 40
	KindChannelMetadata        int = 41
	KindChannelMessage         int = 42
	KindChannelHideMessage     int = 43
	KindChannelMuteUser        int = 44
	KindZapRequest             int = 9734
	KindZap                    int = 9735
	KindRelayListMetadata      int = 10002
	KindNostrConnect           int = 24133
	KindArticle                int = 30023
)

// IsRegularKind checks if the given kind is in the regular range.
func IsRegularKind(kind int) bool {
	return kind == 1 || kind == 2 || (4 <= kind && kind < 45) || (1000 <= kind && kind < 10000)
}

// IsReplaceableKind checks if the given kind is in the replaceable range.
func IsReplaceableKind(kind int) bool {
	return kind == 0 || kind == 3 || (10000 <= kind && kind < 20000)
}

// IsEphemeralKind checks if the given kind is in the ephemeral range.
func IsEphemeralKind(kind int) bool {
	return 20000 <= kind && kind < 30000
}

// IsAddressableKind checks if the given kind is in the addressable
// (parameterized replaceable) range.
func IsAddressableKind(kind int) bool {
	return 30000 <= kind && kind < 40000
}
