package persistence

import "context"

// TokenRepository exposes read and classification operations for tokens.
type TokenRepository interface {
	InsertToken(ctx context.Context, token Token) error
	GetToken(ctx context.Context, identifier string) (Token, error)
	ListTokensByProtocol(ctx context.Context, protocol string) ([]Token, error)
	SetTokenProtocol(ctx context.Context, identifier string, protocol *string) error
}

// CacheRepository stores generic key/value cache entries with insert-if-absent
// semantics.
type CacheRepository interface {
	AddCacheEntry(ctx context.Context, key, value string) error
	HasCacheEntry(ctx context.Context, key, value string) (bool, error)
	CacheValues(ctx context.Context, key string) ([]string, error)
}
