package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/assetdb/internal/persistence"
)

func spamProtocol() *string {
	protocol := persistence.ProtocolSpam
	return &protocol
}

func TestTokenRepository_InsertAndGet(t *testing.T) {
	storage, _ := openTestStorage(t)
	ctx := context.Background()

	token := persistence.Token{
		Identifier: "eip155:1/erc20:0xabc",
		Chain:      1,
		Address:    "0xabc",
		Name:       "Test Token",
		Symbol:     "TST",
		Decimals:   18,
	}
	require.NoError(t, storage.InsertToken(ctx, token))

	got, err := storage.GetToken(ctx, token.Identifier)
	require.NoError(t, err)
	assert.Equal(t, token, got)

	t.Run("missing identifier is rejected", func(t *testing.T) {
		err := storage.InsertToken(ctx, persistence.Token{})
		assert.ErrorIs(t, err, persistence.ErrConstraintViolation)
	})

	t.Run("duplicate insert is rejected", func(t *testing.T) {
		err := storage.InsertToken(ctx, token)
		assert.ErrorIs(t, err, persistence.ErrConstraintViolation)
	})

	t.Run("unknown token reads as not found", func(t *testing.T) {
		_, err := storage.GetToken(ctx, "eip155:1/erc20:0xmissing")
		assert.ErrorIs(t, err, persistence.ErrNotFound)
	})
}

func TestTokenRepository_SetTokenProtocol(t *testing.T) {
	storage, _ := openTestStorage(t)
	ctx := context.Background()

	token := persistence.Token{Identifier: "eip155:1/erc20:0xdef", Chain: 1, Address: "0xdef"}
	require.NoError(t, storage.InsertToken(ctx, token))

	require.NoError(t, storage.SetTokenProtocol(ctx, token.Identifier, spamProtocol()))

	got, err := storage.GetToken(ctx, token.Identifier)
	require.NoError(t, err)
	require.NotNil(t, got.Protocol)
	assert.Equal(t, persistence.ProtocolSpam, *got.Protocol)

	// nil clears the classification back to NULL.
	require.NoError(t, storage.SetTokenProtocol(ctx, token.Identifier, nil))

	got, err = storage.GetToken(ctx, token.Identifier)
	require.NoError(t, err)
	assert.Nil(t, got.Protocol)

	t.Run("unknown token reads as not found", func(t *testing.T) {
		err := storage.SetTokenProtocol(ctx, "eip155:1/erc20:0xmissing", spamProtocol())
		assert.ErrorIs(t, err, persistence.ErrNotFound)
	})
}

func TestTokenRepository_ListTokensByProtocol(t *testing.T) {
	storage, _ := openTestStorage(t)
	ctx := context.Background()

	clean := persistence.Token{Identifier: "eip155:1/erc20:0x01", Chain: 1, Address: "0x01"}
	spamA := persistence.Token{Identifier: "eip155:1/erc20:0x02", Chain: 1, Address: "0x02", Protocol: spamProtocol()}
	spamB := persistence.Token{Identifier: "eip155:1/erc20:0x03", Chain: 1, Address: "0x03", Protocol: spamProtocol()}

	for _, token := range []persistence.Token{clean, spamA, spamB} {
		require.NoError(t, storage.InsertToken(ctx, token))
	}

	spam, err := storage.ListTokensByProtocol(ctx, persistence.ProtocolSpam)
	require.NoError(t, err)
	require.Len(t, spam, 2)
	assert.Equal(t, spamA.Identifier, spam[0].Identifier)
	assert.Equal(t, spamB.Identifier, spam[1].Identifier)
}
