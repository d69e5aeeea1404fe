package testfixtures

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/example/assetdb/internal/persistence"
)

var tokenCounter uint64

// TokenFixture builds a deterministic token record. Each call yields a unique
// identifier; set Protocol to classify the token.
func TokenFixture(protocol *string) persistence.Token {
	n := atomic.AddUint64(&tokenCounter, 1)
	return persistence.Token{
		Identifier: fmt.Sprintf("eip155:1/erc20:0x%040x", n),
		Chain:      1,
		Address:    fmt.Sprintf("0x%040x", n),
		Name:       fmt.Sprintf("Test Token %d", n),
		Symbol:     fmt.Sprintf("TST%d", n),
		Decimals:   18,
		Protocol:   protocol,
	}
}

// SpamProtocol returns a pointer to the spam classification value.
func SpamProtocol() *string {
	protocol := persistence.ProtocolSpam
	return &protocol
}

// MustInsertToken stores the token, failing the test on error.
func MustInsertToken(tb testing.TB, tokens persistence.TokenRepository, token persistence.Token) persistence.Token {
	tb.Helper()

	if err := tokens.InsertToken(context.Background(), token); err != nil {
		tb.Fatalf("failed to insert token %s: %v", token.Identifier, err)
	}
	return token
}
