// File: utils/constants.go
package utils

import "time"

const (
	// AuthCachePrefix prefixes Redis keys that map a token hash to a customer id.
	AuthCachePrefix = "auth:"
	// AuthCacheTTL caps how long a verified token is trusted without
	// re-verification.
	AuthCacheTTL = 10 * time.Minute

	// AccessTokenTTL is the lifetime of tokens issued by the local provider.
	AccessTokenTTL = 24 * time.Hour
)
