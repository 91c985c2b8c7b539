package risk

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// PostgresStore persists validations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed validation store. The
// token_validations table is created by migrations.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Record(ctx context.Context, v *Validation) error {
	issuesJSON, err := json.Marshal(v.Issues)
	if err != nil {
		return fmt.Errorf("failed to marshal issues: %w", err)
	}
	contractJSON, err := json.Marshal(v.Contract)
	if err != nil {
		return fmt.Errorf("failed to marshal contract report: %w", err)
	}
	metadataJSON, err := json.Marshal(v.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO token_validations
			(id, address, chain_id, risk_level, security_score, is_verified,
			 issues, contract_security, metadata_security, validated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		v.ID,
		v.Address,
		int64(v.ChainID),
		v.Level.String(),
		v.Score,
		v.Verified,
		issuesJSON,
		contractJSON,
		metadataJSON,
		v.ValidatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record validation: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByToken(ctx context.Context, address string, chainID ChainID, limit int) ([]*Validation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, address, chain_id, risk_level, security_score, is_verified,
		       issues, contract_security, metadata_security, validated_at
		FROM token_validations
		WHERE address = $1 AND chain_id = $2
		ORDER BY validated_at DESC
		LIMIT $3
	`, strings.ToLower(address), int64(chainID), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list validations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanValidations(rows)
}

func (s *PostgresStore) RecentCritical(ctx context.Context, limit int) ([]*Validation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, address, chain_id, risk_level, security_score, is_verified,
		       issues, contract_security, metadata_security, validated_at
		FROM token_validations
		WHERE risk_level = 'critical'
		ORDER BY validated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list critical validations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanValidations(rows)
}

func scanValidations(rows *sql.Rows) ([]*Validation, error) {
	var result []*Validation
	for rows.Next() {
		var (
			v            Validation
			chainID      int64
			level        string
			issuesJSON   []byte
			contractJSON []byte
			metaJSON     []byte
		)
		if err := rows.Scan(&v.ID, &v.Address, &chainID, &level, &v.Score, &v.Verified,
			&issuesJSON, &contractJSON, &metaJSON, &v.ValidatedAt); err != nil {
			continue
		}
		v.ChainID = ChainID(chainID)
		v.Level, _ = ParseLevel(level)
		_ = json.Unmarshal(issuesJSON, &v.Issues)
		_ = json.Unmarshal(contractJSON, &v.Contract)
		_ = json.Unmarshal(metaJSON, &v.Metadata)
		result = append(result, &v)
	}
	return result, rows.Err()
}
