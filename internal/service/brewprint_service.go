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

type BrewprintService struct {
	repo *repository.BrewprintRepository
}

func NewBrewprintService(repo *repository.BrewprintRepository) *BrewprintService {
	return &BrewprintService{repo: repo}
}

type BrewprintInput struct {
	Name          string
	Method        string
	CoffeeGrams   float64
	WaterGrams    float64
	WaterTempC    float64
	TargetSeconds int
}

// ResultInput is the results-capture payload. Rating is required; notes may
// be empty. TDS and extraction yield are optional measurements, each
// validated independently when present.
type ResultInput struct {
	Rating          int
	Notes           string
	TDSPercent      *float64
	ExtractionYield *float64
	DurationSeconds int
}

func (s *BrewprintService) Create(ctx context.Context, userID string, input BrewprintInput) (*model.Brewprint, *apperrors.APIError) {
	if apiErr := validateBrewprintInput(input); apiErr != nil {
		return nil, apiErr
	}

	now := time.Now().UTC()
	bp := model.Brewprint{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          strings.TrimSpace(input.Name),
		Method:        strings.TrimSpace(input.Method),
		CoffeeGrams:   input.CoffeeGrams,
		WaterGrams:    input.WaterGrams,
		WaterTempC:    input.WaterTempC,
		TargetSeconds: input.TargetSeconds,
		Status:        model.StatusExperimenting,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, &bp); err != nil {
		return nil, apperrors.Internal("failed to create brewprint")
	}
	return &bp, nil
}

func (s *BrewprintService) Get(ctx context.Context, userID, id string) (*model.Brewprint, *apperrors.APIError) {
	return s.getOwned(ctx, userID, id)
}

func (s *BrewprintService) List(ctx context.Context, userID string) ([]model.Brewprint, *apperrors.APIError) {
	brewprints, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list brewprints")
	}
	return brewprints, nil
}

func (s *BrewprintService) Update(ctx context.Context, userID, id string, input BrewprintInput) (*model.Brewprint, *apperrors.APIError) {
	if apiErr := validateBrewprintInput(input); apiErr != nil {
		return nil, apiErr
	}

	bp, apiErr := s.getOwned(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}
	if bp.Status == model.StatusArchived {
		return nil, apperrors.Conflict("brewprint_archived", "archived brewprints cannot be edited", nil)
	}

	bp.Name = strings.TrimSpace(input.Name)
	bp.Method = strings.TrimSpace(input.Method)
	bp.CoffeeGrams = input.CoffeeGrams
	bp.WaterGrams = input.WaterGrams
	bp.WaterTempC = input.WaterTempC
	bp.TargetSeconds = input.TargetSeconds
	bp.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, bp); err != nil {
		return nil, apperrors.Internal("failed to update brewprint")
	}
	return bp, nil
}

func (s *BrewprintService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	if _, apiErr := s.getOwned(ctx, userID, id); apiErr != nil {
		return apiErr
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete brewprint")
	}
	return nil
}

// Finalize promotes an experimenting brewprint to final.
func (s *BrewprintService) Finalize(ctx context.Context, userID, id string) (*model.Brewprint, *apperrors.APIError) {
	bp, apiErr := s.getOwned(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}
	if bp.Status != model.StatusExperimenting {
		return nil, apperrors.Conflict("invalid_status", "only experimenting brewprints can be finalized", nil)
	}
	return s.setStatus(ctx, bp, model.StatusFinal)
}

func (s *BrewprintService) Archive(ctx context.Context, userID, id string) (*model.Brewprint, *apperrors.APIError) {
	bp, apiErr := s.getOwned(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}
	if bp.Status == model.StatusArchived {
		return nil, apperrors.Conflict("invalid_status", "brewprint is already archived", nil)
	}
	return s.setStatus(ctx, bp, model.StatusArchived)
}

// Fork copies a brewprint as a new experimenting iteration linked to its
// parent, so a finalized recipe can keep evolving without losing its history.
func (s *BrewprintService) Fork(ctx context.Context, userID, id string) (*model.Brewprint, *apperrors.APIError) {
	parent, apiErr := s.getOwned(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}

	now := time.Now().UTC()
	parentID := parent.ID
	fork := model.Brewprint{
		ID:            uuid.NewString(),
		UserID:        parent.UserID,
		ParentID:      &parentID,
		Name:          parent.Name,
		Method:        parent.Method,
		CoffeeGrams:   parent.CoffeeGrams,
		WaterGrams:    parent.WaterGrams,
		WaterTempC:    parent.WaterTempC,
		TargetSeconds: parent.TargetSeconds,
		Status:        model.StatusExperimenting,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, &fork); err != nil {
		return nil, apperrors.Internal("failed to fork brewprint")
	}
	return &fork, nil
}

// SubmitResult validates the payload before touching the store: an invalid
// rating or measurement never issues a write, and a failed write leaves the
// caller free to retry with its session state intact.
func (s *BrewprintService) SubmitResult(ctx context.Context, userID, brewprintID string, input ResultInput) (*model.BrewResult, *apperrors.APIError) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.BadRequest("invalid_rating", "rating must be an integer between 1 and 5")
	}
	if input.TDSPercent != nil && *input.TDSPercent <= 0 {
		return nil, apperrors.BadRequest("invalid_tds", "tds percent must be a positive number")
	}
	if input.ExtractionYield != nil && *input.ExtractionYield <= 0 {
		return nil, apperrors.BadRequest("invalid_extraction_yield", "extraction yield must be a positive number")
	}
	if input.DurationSeconds < 0 {
		return nil, apperrors.BadRequest("invalid_duration", "duration must not be negative")
	}

	bp, apiErr := s.getOwned(ctx, userID, brewprintID)
	if apiErr != nil {
		return nil, apiErr
	}
	if bp.Status == model.StatusArchived {
		return nil, apperrors.Conflict("brewprint_archived", "archived brewprints cannot take new results", nil)
	}

	now := time.Now().UTC()
	result := model.BrewResult{
		ID:              uuid.NewString(),
		BrewprintID:     bp.ID,
		Rating:          input.Rating,
		Notes:           input.Notes,
		TDSPercent:      input.TDSPercent,
		ExtractionYield: input.ExtractionYield,
		DurationSeconds: input.DurationSeconds,
		BrewedAt:        now,
		CreatedAt:       now,
	}

	if err := s.repo.InsertResult(ctx, &result); err != nil {
		return nil, apperrors.Internal("failed to save brew result")
	}
	return &result, nil
}

func (s *BrewprintService) ListResults(ctx context.Context, userID, brewprintID string) ([]model.BrewResult, *apperrors.APIError) {
	if _, apiErr := s.getOwned(ctx, userID, brewprintID); apiErr != nil {
		return nil, apiErr
	}
	results, err := s.repo.ListResults(ctx, brewprintID)
	if err != nil {
		return nil, apperrors.Internal("failed to list brew results")
	}
	return results, nil
}

// getOwned fetches a brewprint and enforces ownership. An empty userID is
// the trusted single-user local mode used by the TUI; cross-user access from
// the API reads as not-found.
func (s *BrewprintService) getOwned(ctx context.Context, userID, id string) (*model.Brewprint, *apperrors.APIError) {
	bp, err := s.repo.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("brewprint_not_found", "brewprint not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get brewprint")
	}
	if userID != "" && bp.UserID != userID {
		return nil, apperrors.NotFound("brewprint_not_found", "brewprint not found")
	}
	return bp, nil
}

func (s *BrewprintService) setStatus(ctx context.Context, bp *model.Brewprint, status string) (*model.Brewprint, *apperrors.APIError) {
	bp.Status = status
	bp.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, bp); err != nil {
		return nil, apperrors.Internal("failed to update brewprint status")
	}
	return bp, nil
}

func validateBrewprintInput(input BrewprintInput) *apperrors.APIError {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.BadRequest("invalid_name", "name is required")
	}
	if input.CoffeeGrams <= 0 {
		return apperrors.BadRequest("invalid_coffee_grams", "coffee grams must be a positive number")
	}
	if input.WaterGrams <= 0 {
		return apperrors.BadRequest("invalid_water_grams", "water grams must be a positive number")
	}
	if input.TargetSeconds < 0 {
		return apperrors.BadRequest("invalid_target_seconds", "target seconds must not be negative")
	}
	return nil
}
