package repository

import (
	"context"
	"database/sql"
	"fmt"

	"brewbuddy/internal/model"
)

type EquipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, item *model.Equipment) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO equipment (id, user_id, kind, name, brand, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.UserID,
		item.Kind,
		item.Name,
		item.Brand,
		item.Notes,
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*model.Equipment, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, kind, name, brand, notes, created_at, updated_at
		 FROM equipment
		 WHERE id = ?`,
		id,
	)
	return scanEquipment(row)
}

// List returns a user's equipment, optionally filtered by kind.
func (r *EquipmentRepository) List(ctx context.Context, userID, kind string) ([]model.Equipment, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, kind, name, brand, notes, created_at, updated_at
		 FROM equipment
		 WHERE user_id = ? AND (? = '' OR kind = ?)
		 ORDER BY created_at DESC`,
		userID,
		kind,
		kind,
	)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	items := make([]model.Equipment, 0)
	for rows.Next() {
		item, scanErr := scanEquipment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equipment: %w", err)
	}
	return items, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, item *model.Equipment) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE equipment
		 SET kind = ?,
		     name = ?,
		     brand = ?,
		     notes = ?,
		     updated_at = ?
		 WHERE id = ?`,
		item.Kind,
		item.Name,
		item.Brand,
		item.Notes,
		formatTime(item.UpdatedAt),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEquipment(s scanner) (*model.Equipment, error) {
	item := model.Equipment{}
	var createdAt string
	var updatedAt string
	err := s.Scan(
		&item.ID,
		&item.UserID,
		&item.Kind,
		&item.Name,
		&item.Brand,
		&item.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan equipment: %w", err)
	}

	parsedCreatedAt, parseErr := parseTime(createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parse equipment created_at: %w", parseErr)
	}
	parsedUpdatedAt, parseErr := parseTime(updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parse equipment updated_at: %w", parseErr)
	}
	item.CreatedAt = parsedCreatedAt
	item.UpdatedAt = parsedUpdatedAt
	return &item, nil
}
