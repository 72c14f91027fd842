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

type BeanService struct {
	repo *repository.BeanRepository
}

func NewBeanService(repo *repository.BeanRepository) *BeanService {
	return &BeanService{repo: repo}
}

type BeanInput struct {
	Name           string
	Roaster        string
	Origin         string
	RoastLevel     string
	RoastDate      *time.Time
	WeightGrams    float64
	RemainingGrams *float64
}

func (s *BeanService) Create(ctx context.Context, userID string, input BeanInput) (*model.Bean, *apperrors.APIError) {
	if apiErr := validateBeanInput(input); apiErr != nil {
		return nil, apiErr
	}

	now := time.Now().UTC()
	remaining := input.WeightGrams
	if input.RemainingGrams != nil {
		remaining = *input.RemainingGrams
	}

	bean := model.Bean{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           strings.TrimSpace(input.Name),
		Roaster:        strings.TrimSpace(input.Roaster),
		Origin:         strings.TrimSpace(input.Origin),
		RoastLevel:     strings.TrimSpace(input.RoastLevel),
		RoastDate:      input.RoastDate,
		WeightGrams:    input.WeightGrams,
		RemainingGrams: remaining,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, &bean); err != nil {
		return nil, apperrors.Internal("failed to create bean")
	}
	return &bean, nil
}

func (s *BeanService) Get(ctx context.Context, userID, id string) (*model.Bean, *apperrors.APIError) {
	return s.getOwned(ctx, userID, id)
}

func (s *BeanService) List(ctx context.Context, userID string) ([]model.Bean, *apperrors.APIError) {
	beans, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list beans")
	}
	return beans, nil
}

func (s *BeanService) Update(ctx context.Context, userID, id string, input BeanInput) (*model.Bean, *apperrors.APIError) {
	if apiErr := validateBeanInput(input); apiErr != nil {
		return nil, apiErr
	}

	bean, apiErr := s.getOwned(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}

	bean.Name = strings.TrimSpace(input.Name)
	bean.Roaster = strings.TrimSpace(input.Roaster)
	bean.Origin = strings.TrimSpace(input.Origin)
	bean.RoastLevel = strings.TrimSpace(input.RoastLevel)
	bean.RoastDate = input.RoastDate
	bean.WeightGrams = input.WeightGrams
	if input.RemainingGrams != nil {
		bean.RemainingGrams = *input.RemainingGrams
	}
	bean.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, bean); err != nil {
		return nil, apperrors.Internal("failed to update bean")
	}
	return bean, nil
}

func (s *BeanService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	if _, apiErr := s.getOwned(ctx, userID, id); apiErr != nil {
		return apiErr
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete bean")
	}
	return nil
}

func (s *BeanService) getOwned(ctx context.Context, userID, id string) (*model.Bean, *apperrors.APIError) {
	bean, err := s.repo.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("bean_not_found", "bean not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get bean")
	}
	if userID != "" && bean.UserID != userID {
		return nil, apperrors.NotFound("bean_not_found", "bean not found")
	}
	return bean, nil
}

func validateBeanInput(input BeanInput) *apperrors.APIError {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.BadRequest("invalid_name", "name is required")
	}
	if input.WeightGrams <= 0 {
		return apperrors.BadRequest("invalid_weight", "weight grams must be a positive number")
	}
	if input.RemainingGrams != nil {
		if *input.RemainingGrams < 0 || *input.RemainingGrams > input.WeightGrams {
			return apperrors.BadRequest("invalid_remaining", "remaining grams must be between zero and the bag weight")
		}
	}
	return nil
}
