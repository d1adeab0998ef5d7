package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resumeforge/tailor/internal/types"
)

// SaveJDAnalysis persists one interpreted job description (C1 output) as its
// own row, independent of any résumé generated from it, and returns its ID
// and creation time for the POST /api/jd/analyze response.
func (db *DB) SaveJDAnalysis(ctx context.Context, jd types.JDData, rawText string) (uuid.UUID, time.Time, error) {
	structured, err := json.Marshal(jd)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("failed to marshal jd data: %w", err)
	}

	var id uuid.UUID
	var createdAt time.Time
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jd_analyses (raw_text, structured_data)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		rawText, structured,
	).Scan(&id, &createdAt)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("failed to save jd analysis: %w", err)
	}
	return id, createdAt, nil
}
