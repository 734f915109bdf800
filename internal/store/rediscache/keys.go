package rediscache

const (
	// KeyPrefixOwnerList is the prefix for cached per-owner collections.
	KeyPrefixOwnerList = "pinbox:owner:"
)

// OwnerListKey returns the Redis key for an owner's cached collection.
func OwnerListKey(userID string) string {
	return KeyPrefixOwnerList + userID + ":list"
}
