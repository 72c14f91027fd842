package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "brewbuddy/internal/errors"
	"brewbuddy/internal/model"
	"brewbuddy/internal/repository"
)

type EquipmentService struct {
	repo *repository.EquipmentRepository
}

func NewEquipmentService(repo *repository.EquipmentRepository) *EquipmentService {
	return &EquipmentService{repo: repo}
}

type EquipmentInput struct {
	Kind  string
	Name  string
	Brand string
	Notes string
}

func (s *EquipmentService) Create(ctx context.Context, userID string, input EquipmentInput) (*model.Equipment, *apperrors.APIError) {
	if apiErr := validateEquipmentInput(input); apiErr != nil {
		return nil, apiErr
	}

	now := time.Now().UTC()
	item := model.Equipment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      input.Kind,
		Name:      strings.TrimSpace(input.Name),
		Brand:     strings.TrimSpace(input.Brand),
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, apperrors.Internal("failed to create equipment")
	}
	return &item, nil
}

func (s *EquipmentService) Get(ctx context.Context, userID, id string) (*model.Equipment, *apperrors.APIError) {
	return s.getOwned(ctx, userID, id)
}

func (s *EquipmentService) List(ctx context.Context, userID, kind string) ([]model.Equipment, *apperrors.APIError) {
	if kind != "" && !model.IsValidEquipmentKind(kind) {
		return nil, apperrors.BadRequest("invalid_kind", "kind must be brewer or grinder")
	}
	items, err := s.repo.List(ctx, userID, kind)
	if err != nil {
		return nil, apperrors.Internal("failed to list equipment")
	}
	return items, nil
}

func (s *EquipmentService) Update(ctx context.Context, userID, id string, input EquipmentInput) (*model.Equipment, *apperrors.APIError) {
	if apiErr := validateEquipmentInput(input); apiErr != nil {
		return nil, apiErr
	}

	item, apiErr := s.getOwned(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}

	item.Kind = input.Kind
	item.Name = strings.TrimSpace(input.Name)
	item.Brand = strings.TrimSpace(input.Brand)
	item.Notes = input.Notes
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, apperrors.Internal("failed to update equipment")
	}
	return item, nil
}

func (s *EquipmentService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	if _, apiErr := s.getOwned(ctx, userID, id); apiErr != nil {
		return apiErr
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete equipment")
	}
	return nil
}

func (s *EquipmentService) getOwned(ctx context.Context, userID, id string) (*model.Equipment, *apperrors.APIError) {
	item, err := s.repo.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("equipment_not_found", "equipment not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get equipment")
	}
	if userID != "" && item.UserID != userID {
		return nil, apperrors.NotFound("equipment_not_found", "equipment not found")
	}
	return item, nil
}

func validateEquipmentInput(input EquipmentInput) *apperrors.APIError {
	if !model.IsValidEquipmentKind(input.Kind) {
		return apperrors.BadRequest("invalid_kind", "kind must be brewer or grinder")
	}
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.BadRequest("invalid_name", "name is required")
	}
	return nil
}
