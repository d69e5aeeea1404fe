package persistence

// Token is an EVM token row in the asset database. Protocol is nil when the
// token carries no classification; the value "spam" marks auto-detected spam
// tokens.
type Token struct {
	Identifier string
	Chain      int64
	Address    string
	Name       string
	Symbol     string
	Decimals   int64
	Protocol   *string
}

// CacheEntry is a generic key/value record with the unix timestamp of the last
// query that touched it. Multiple values may exist for one key.
type CacheEntry struct {
	Key           string
	Value         string
	LastQueriedTs int64
}

// ProtocolSpam is the classification value given to auto-detected spam tokens.
const ProtocolSpam = "spam"

// CacheKeySpamFalsePositive is the general_cache key whose values are token
// identifiers explicitly whitelisted against spam detection.
const CacheKeySpamFalsePositive = "SPAM_ASSET_FALSE_POSITIVE"
