package verification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"cleargate/internal/compliance"
	"cleargate/pkg/platform/sentinel"
)

// PostgresStore resolves verification profiles from PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE verification_profiles (
//	    address      TEXT PRIMARY KEY,
//	    tier         TEXT NOT NULL,
//	    jurisdiction TEXT NOT NULL DEFAULT '',
//	    active       BOOLEAN NOT NULL DEFAULT false
//	);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed verification provider.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Resolve returns the actor's profile, or nil when no row exists. Only
// transport failures surface as errors.
func (s *PostgresStore) Resolve(ctx context.Context, actor string) (*compliance.VerificationProfile, error) {
	var tier, jurisdiction string
	err := s.db.QueryRowContext(ctx,
		`SELECT tier, jurisdiction FROM verification_profiles WHERE address = lower($1)`,
		actor,
	).Scan(&tier, &jurisdiction)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve verification profile: %w", err)
	}
	return &compliance.VerificationProfile{
		Tier:         compliance.ParseTier(tier),
		Jurisdiction: jurisdiction,
	}, nil
}

// HasActiveIdentity reports whether the actor has an active identity record.
func (s *PostgresStore) HasActiveIdentity(ctx context.Context, actor string) (bool, error) {
	var active bool
	err := s.db.QueryRowContext(ctx,
		`SELECT active FROM verification_profiles WHERE address = lower($1)`,
		actor,
	).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resolve identity state: %w", err)
	}
	return active, nil
}

// Upsert writes an actor's verification state. Used by provisioning tooling,
// not by the engine itself.
func (s *PostgresStore) Upsert(ctx context.Context, actor string, profile compliance.VerificationProfile, active bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO verification_profiles (address, tier, jurisdiction, active)
		 VALUES (lower($1), $2, $3, $4)
		 ON CONFLICT (address) DO UPDATE
		 SET tier = EXCLUDED.tier, jurisdiction = EXCLUDED.jurisdiction, active = EXCLUDED.active`,
		actor, profile.Tier.String(), profile.Jurisdiction, active,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("upsert verification profile: %w", err)
	}
	return nil
}
