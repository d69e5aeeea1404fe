package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/example/assetdb/internal/persistence"
)

// InsertToken inserts a new token row.
func (s *Storage) InsertToken(ctx context.Context, token persistence.Token) error {
	if token.Identifier == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO evm_tokens (identifier, chain, address, name, symbol, decimals, protocol)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		token.Identifier,
		token.Chain,
		token.Address,
		token.Name,
		token.Symbol,
		token.Decimals,
		token.Protocol,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: token %s already exists", persistence.ErrConstraintViolation, token.Identifier)
		}
		return fmt.Errorf("sqlite: insert token %s: %w", token.Identifier, err)
	}

	return nil
}

// GetToken retrieves a token by identifier.
func (s *Storage) GetToken(ctx context.Context, identifier string) (persistence.Token, error) {
	query := `
		SELECT identifier, chain, address, name, symbol, decimals, protocol
		FROM evm_tokens
		WHERE identifier = ?
	`

	token, err := scanToken(s.db.QueryRowContext(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Token{}, persistence.ErrNotFound
		}
		return persistence.Token{}, fmt.Errorf("sqlite: get token %s: %w", identifier, err)
	}

	return token, nil
}

// ListTokensByProtocol returns all tokens carrying the given classification,
// ordered by identifier.
func (s *Storage) ListTokensByProtocol(ctx context.Context, protocol string) ([]persistence.Token, error) {
	query := `
		SELECT identifier, chain, address, name, symbol, decimals, protocol
		FROM evm_tokens
		WHERE protocol = ?
		ORDER BY identifier ASC
	`

	rows, err := s.db.QueryContext(ctx, query, protocol)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list tokens by protocol %q: %w", protocol, err)
	}
	defer rows.Close()

	var tokens []persistence.Token
	for rows.Next() {
		token, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan token row: %w", err)
		}
		tokens = append(tokens, token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate token rows: %w", err)
	}

	return tokens, nil
}

// SetTokenProtocol updates a token's classification. A nil protocol clears it.
func (s *Storage) SetTokenProtocol(ctx context.Context, identifier string, protocol *string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE evm_tokens SET protocol = ? WHERE identifier = ?`, protocol, identifier)
	if err != nil {
		return fmt.Errorf("sqlite: set protocol for %s: %w", identifier, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: set protocol for %s: %w", identifier, err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanToken(row rowScanner) (persistence.Token, error) {
	var token persistence.Token
	var name, symbol, address sql.NullString
	var decimals sql.NullInt64
	var protocol sql.NullString

	err := row.Scan(&token.Identifier, &token.Chain, &address, &name, &symbol, &decimals, &protocol)
	if err != nil {
		return persistence.Token{}, err
	}

	token.Address = address.String
	token.Name = name.String
	token.Symbol = symbol.String
	token.Decimals = decimals.Int64
	if protocol.Valid {
		token.Protocol = &protocol.String
	}

	return token, nil
}
