package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/assetdb/internal/persistence"
)

// SpamFilter classifies tokens as spam while honoring the explicit whitelist
// kept in the general cache. Whitelisted tokens are never re-flagged, even
// when a detection heuristic reports them again.
type SpamFilter struct {
	tokens persistence.TokenRepository
	cache  persistence.CacheRepository
	logger *slog.Logger
}

// NewSpamFilter creates a spam filter over the given repositories.
func NewSpamFilter(tokens persistence.TokenRepository, cache persistence.CacheRepository) *SpamFilter {
	return NewSpamFilterWithLogger(tokens, cache, nil)
}

// NewSpamFilterWithLogger creates a spam filter that reports decisions to the
// supplied logger. A nil logger falls back to slog.Default.
func NewSpamFilterWithLogger(tokens persistence.TokenRepository, cache persistence.CacheRepository, logger *slog.Logger) *SpamFilter {
	return &SpamFilter{
		tokens: tokens,
		cache:  cache,
		logger: logger,
	}
}

// IsWhitelisted reports whether the token was explicitly marked as a spam
// false positive.
func (f *SpamFilter) IsWhitelisted(ctx context.Context, identifier string) (bool, error) {
	whitelisted, err := f.cache.HasCacheEntry(ctx, persistence.CacheKeySpamFalsePositive, identifier)
	if err != nil {
		return false, fmt.Errorf("check spam whitelist for %s: %w", identifier, err)
	}
	return whitelisted, nil
}

// Flag marks a token as spam unless it is whitelisted, in which case the
// request is dropped silently apart from a log entry.
func (f *SpamFilter) Flag(ctx context.Context, identifier string) error {
	logger := serviceLogger(ctx, f.logger, "spam_filter", "flag", "identifier", identifier)

	whitelisted, err := f.IsWhitelisted(ctx, identifier)
	if err != nil {
		logger.Error("whitelist lookup failed", "error", err, "kind", ErrorKind(err))
		return err
	}
	if whitelisted {
		logger.Info("skipping spam flag for whitelisted token")
		return nil
	}

	protocol := persistence.ProtocolSpam
	if err := f.tokens.SetTokenProtocol(ctx, identifier, &protocol); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return err
		}
		logger.Error("failed to flag token", "error", err, "kind", ErrorKind(err))
		return fmt.Errorf("flag token %s as spam: %w", identifier, err)
	}

	logger.Info("token flagged as spam")
	return nil
}

// Whitelist clears a token's spam classification and records the false
// positive marker so the token stays clear of future detection passes. The
// token does not need to exist for the marker to be recorded; corrections can
// arrive before the token itself does.
func (f *SpamFilter) Whitelist(ctx context.Context, identifier string) error {
	logger := serviceLogger(ctx, f.logger, "spam_filter", "whitelist", "identifier", identifier)

	if err := f.tokens.SetTokenProtocol(ctx, identifier, nil); err != nil && !errors.Is(err, persistence.ErrNotFound) {
		logger.Error("failed to clear spam classification", "error", err, "kind", ErrorKind(err))
		return fmt.Errorf("clear spam classification for %s: %w", identifier, err)
	}

	if err := f.cache.AddCacheEntry(ctx, persistence.CacheKeySpamFalsePositive, identifier); err != nil {
		logger.Error("failed to record whitelist marker", "error", err, "kind", ErrorKind(err))
		return fmt.Errorf("record whitelist marker for %s: %w", identifier, err)
	}

	logger.Info("token whitelisted")
	return nil
}
