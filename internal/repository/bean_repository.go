package repository

import (
	"context"
	"database/sql"
	"fmt"

	"brewbuddy/internal/model"
)

type BeanRepository struct {
	db *sql.DB
}

func NewBeanRepository(db *sql.DB) *BeanRepository {
	return &BeanRepository{db: db}
}

func (r *BeanRepository) Create(ctx context.Context, bean *model.Bean) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO beans (
			id, user_id, name, roaster, origin, roast_level, roast_date,
			weight_grams, remaining_grams, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bean.ID,
		bean.UserID,
		bean.Name,
		bean.Roaster,
		bean.Origin,
		bean.RoastLevel,
		formatTimePtr(bean.RoastDate),
		bean.WeightGrams,
		bean.RemainingGrams,
		formatTime(bean.CreatedAt),
		formatTime(bean.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create bean: %w", err)
	}
	return nil
}

func (r *BeanRepository) GetByID(ctx context.Context, id string) (*model.Bean, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, name, roaster, origin, roast_level, roast_date,
		        weight_grams, remaining_grams, created_at, updated_at
		 FROM beans
		 WHERE id = ?`,
		id,
	)
	return scanBean(row)
}

func (r *BeanRepository) List(ctx context.Context, userID string) ([]model.Bean, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, name, roaster, origin, roast_level, roast_date,
		        weight_grams, remaining_grams, created_at, updated_at
		 FROM beans
		 WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list beans: %w", err)
	}
	defer rows.Close()

	beans := make([]model.Bean, 0)
	for rows.Next() {
		bean, scanErr := scanBean(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		beans = append(beans, *bean)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate beans: %w", err)
	}
	return beans, nil
}

func (r *BeanRepository) Update(ctx context.Context, bean *model.Bean) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE beans
		 SET name = ?,
		     roaster = ?,
		     origin = ?,
		     roast_level = ?,
		     roast_date = ?,
		     weight_grams = ?,
		     remaining_grams = ?,
		     updated_at = ?
		 WHERE id = ?`,
		bean.Name,
		bean.Roaster,
		bean.Origin,
		bean.RoastLevel,
		formatTimePtr(bean.RoastDate),
		bean.WeightGrams,
		bean.RemainingGrams,
		formatTime(bean.UpdatedAt),
		bean.ID,
	)
	if err != nil {
		return fmt.Errorf("update bean: %w", err)
	}
	return nil
}

func (r *BeanRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM beans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bean: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bean: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBean(s scanner) (*model.Bean, error) {
	bean := model.Bean{}
	var roastDate sql.NullString
	var createdAt string
	var updatedAt string
	err := s.Scan(
		&bean.ID,
		&bean.UserID,
		&bean.Name,
		&bean.Roaster,
		&bean.Origin,
		&bean.RoastLevel,
		&roastDate,
		&bean.WeightGrams,
		&bean.RemainingGrams,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan bean: %w", err)
	}

	if roastDate.Valid {
		parsed, parseErr := parseTime(roastDate.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse bean roast_date: %w", parseErr)
		}
		bean.RoastDate = &parsed
	}

	parsedCreatedAt, parseErr := parseTime(createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parse bean created_at: %w", parseErr)
	}
	parsedUpdatedAt, parseErr := parseTime(updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parse bean updated_at: %w", parseErr)
	}
	bean.CreatedAt = parsedCreatedAt
	bean.UpdatedAt = parsedUpdatedAt
	return &bean, nil
}
