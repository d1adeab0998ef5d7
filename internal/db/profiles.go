package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/resumeforge/tailor/internal/types"
)

// GetProfile loads a candidate profile by ID, or nil if not found.
func (db *DB) GetProfile(ctx context.Context, profileID uuid.UUID) (*types.Profile, error) {
	var blob []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM profiles WHERE id = $1`,
		profileID,
	).Scan(&blob)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.Profile
	if err := json.Unmarshal(blob, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	profile.ID = profileID.String()
	return &profile, nil
}

// SaveProfileEmbeddings persists newly-filled bullet/section vectors back
// onto the stored profile. Callers wrap this in WithProfileLock so that
// concurrent lazy-fill for the same profile cannot write conflicting
// vectors (spec.md §5 ordering guarantee).
func (db *DB) SaveProfileEmbeddings(ctx context.Context, profile types.Profile) error {
	blob, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	profileID, err := uuid.Parse(profile.ID)
	if err != nil {
		return fmt.Errorf("invalid profile id: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE profiles SET content = $1 WHERE id = $2`,
		blob, profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile embeddings: %w", err)
	}
	return nil
}

// WithProfileLock runs fn while holding a transaction-scoped PostgreSQL
// advisory lock keyed by profile_id, serializing concurrent
// ensure_profile_embeddings runs for the same profile (spec.md §5).
func (db *DB) WithProfileLock(ctx context.Context, profileID uuid.UUID, fn func(ctx context.Context) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, profileID.String()); err != nil {
		return fmt.Errorf("failed to acquire profile lock: %w", err)
	}

	if err := fn(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile lock transaction: %w", err)
	}
	return nil
}
