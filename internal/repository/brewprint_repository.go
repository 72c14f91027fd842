package repository

import (
	"context"
	"database/sql"
	"fmt"

	"brewbuddy/internal/model"
)

type BrewprintRepository struct {
	db *sql.DB
}

func NewBrewprintRepository(db *sql.DB) *BrewprintRepository {
	return &BrewprintRepository{db: db}
}

func (r *BrewprintRepository) Create(ctx context.Context, bp *model.Brewprint) error {
	var parentID interface{}
	if bp.ParentID != nil {
		parentID = *bp.ParentID
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO brewprints (
			id, user_id, parent_id, name, method, coffee_grams, water_grams,
			water_temp_c, target_seconds, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bp.ID,
		bp.UserID,
		parentID,
		bp.Name,
		bp.Method,
		bp.CoffeeGrams,
		bp.WaterGrams,
		bp.WaterTempC,
		bp.TargetSeconds,
		bp.Status,
		formatTime(bp.CreatedAt),
		formatTime(bp.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create brewprint: %w", err)
	}
	return nil
}

func (r *BrewprintRepository) GetByID(ctx context.Context, id string) (*model.Brewprint, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, parent_id, name, method, coffee_grams, water_grams,
		        water_temp_c, target_seconds, status, created_at, updated_at
		 FROM brewprints
		 WHERE id = ?`,
		id,
	)
	return scanBrewprint(row)
}

// List returns a user's brewprints, newest first. An empty userID lists every
// brewprint, which is how the single-user local TUI browses the store.
func (r *BrewprintRepository) List(ctx context.Context, userID string) ([]model.Brewprint, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, parent_id, name, method, coffee_grams, water_grams,
		        water_temp_c, target_seconds, status, created_at, updated_at
		 FROM brewprints
		 WHERE (? = '' OR user_id = ?)
		 ORDER BY created_at DESC`,
		userID,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list brewprints: %w", err)
	}
	defer rows.Close()

	brewprints := make([]model.Brewprint, 0)
	for rows.Next() {
		bp, scanErr := scanBrewprint(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		brewprints = append(brewprints, *bp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brewprints: %w", err)
	}
	return brewprints, nil
}

func (r *BrewprintRepository) Update(ctx context.Context, bp *model.Brewprint) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE brewprints
		 SET name = ?,
		     method = ?,
		     coffee_grams = ?,
		     water_grams = ?,
		     water_temp_c = ?,
		     target_seconds = ?,
		     status = ?,
		     updated_at = ?
		 WHERE id = ?`,
		bp.Name,
		bp.Method,
		bp.CoffeeGrams,
		bp.WaterGrams,
		bp.WaterTempC,
		bp.TargetSeconds,
		bp.Status,
		formatTime(bp.UpdatedAt),
		bp.ID,
	)
	if err != nil {
		return fmt.Errorf("update brewprint: %w", err)
	}
	return nil
}

func (r *BrewprintRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brewprints WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete brewprint: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete brewprint: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BrewprintRepository) InsertResult(ctx context.Context, result *model.BrewResult) error {
	var tds interface{}
	if result.TDSPercent != nil {
		tds = *result.TDSPercent
	}
	var extraction interface{}
	if result.ExtractionYield != nil {
		extraction = *result.ExtractionYield
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO brew_results (
			id, brewprint_id, rating, notes, tds_percent, extraction_yield,
			duration_seconds, brewed_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID,
		result.BrewprintID,
		result.Rating,
		result.Notes,
		tds,
		extraction,
		result.DurationSeconds,
		formatTime(result.BrewedAt),
		formatTime(result.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert brew result: %w", err)
	}
	return nil
}

func (r *BrewprintRepository) ListResults(ctx context.Context, brewprintID string) ([]model.BrewResult, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, brewprint_id, rating, notes, tds_percent, extraction_yield,
		        duration_seconds, brewed_at, created_at
		 FROM brew_results
		 WHERE brewprint_id = ?
		 ORDER BY brewed_at DESC`,
		brewprintID,
	)
	if err != nil {
		return nil, fmt.Errorf("list brew results: %w", err)
	}
	defer rows.Close()

	results := make([]model.BrewResult, 0)
	for rows.Next() {
		result, scanErr := scanBrewResult(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		results = append(results, *result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brew results: %w", err)
	}
	return results, nil
}

func (r *BrewprintRepository) CountResults(ctx context.Context, brewprintID string) (int, error) {
	var count int
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM brew_results WHERE brewprint_id = ?`,
		brewprintID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count brew results: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBrewprint(s scanner) (*model.Brewprint, error) {
	bp := model.Brewprint{}
	var parentID sql.NullString
	var createdAt string
	var updatedAt string
	err := s.Scan(
		&bp.ID,
		&bp.UserID,
		&parentID,
		&bp.Name,
		&bp.Method,
		&bp.CoffeeGrams,
		&bp.WaterGrams,
		&bp.WaterTempC,
		&bp.TargetSeconds,
		&bp.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan brewprint: %w", err)
	}

	if parentID.Valid {
		value := parentID.String
		bp.ParentID = &value
	}

	parsedCreatedAt, parseErr := parseTime(createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parse brewprint created_at: %w", parseErr)
	}
	parsedUpdatedAt, parseErr := parseTime(updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parse brewprint updated_at: %w", parseErr)
	}
	bp.CreatedAt = parsedCreatedAt
	bp.UpdatedAt = parsedUpdatedAt
	return &bp, nil
}

func scanBrewResult(s scanner) (*model.BrewResult, error) {
	result := model.BrewResult{}
	var tds sql.NullFloat64
	var extraction sql.NullFloat64
	var brewedAt string
	var createdAt string
	err := s.Scan(
		&result.ID,
		&result.BrewprintID,
		&result.Rating,
		&result.Notes,
		&tds,
		&extraction,
		&result.DurationSeconds,
		&brewedAt,
		&createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan brew result: %w", err)
	}

	if tds.Valid {
		value := tds.Float64
		result.TDSPercent = &value
	}
	if extraction.Valid {
		value := extraction.Float64
		result.ExtractionYield = &value
	}

	parsedBrewedAt, parseErr := parseTime(brewedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parse result brewed_at: %w", parseErr)
	}
	parsedCreatedAt, parseErr := parseTime(createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parse result created_at: %w", parseErr)
	}
	result.BrewedAt = parsedBrewedAt
	result.CreatedAt = parsedCreatedAt
	return &result, nil
}
