package cache

// GenerateKey joins a prefix and an identifier into a cache key.
func GenerateKey(prefix, id string) string {
	return prefix + ":" + id
}
