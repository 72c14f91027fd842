package service

import (
	"context"
	"database/sql"
	"net/http"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewbuddy/internal/db"
	"brewbuddy/internal/model"
	"brewbuddy/internal/repository"
)

type brewprintFixture struct {
	svc    *BrewprintService
	repo   *repository.BrewprintRepository
	userID string
}

func setupBrewprintService(t *testing.T) brewprintFixture {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	require.NoError(t, db.RunMigrations(database, migrationsDir))

	userID := createTestUser(t, database, "owner@example.com")
	repo := repository.NewBrewprintRepository(database)
	return brewprintFixture{svc: NewBrewprintService(repo), repo: repo, userID: userID}
}

func createTestUser(t *testing.T, database *sql.DB, email string) string {
	t.Helper()

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "irrelevant",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repository.NewUserRepository(database).Create(context.Background(), &user))
	return user.ID
}

func validInput() BrewprintInput {
	return BrewprintInput{
		Name:          "Morning V60",
		Method:        "v60",
		CoffeeGrams:   15,
		WaterGrams:    250,
		WaterTempC:    93,
		TargetSeconds: 180,
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	fx := setupBrewprintService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(*BrewprintInput)
		wantCode string
	}{
		{"blank name", func(in *BrewprintInput) { in.Name = "  " }, "invalid_name"},
		{"zero coffee", func(in *BrewprintInput) { in.CoffeeGrams = 0 }, "invalid_coffee_grams"},
		{"negative water", func(in *BrewprintInput) { in.WaterGrams = -1 }, "invalid_water_grams"},
		{"negative target", func(in *BrewprintInput) { in.TargetSeconds = -5 }, "invalid_target_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, apiErr := fx.svc.Create(ctx, fx.userID, input)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestFinalizeOnlyFromExperimenting(t *testing.T) {
	fx := setupBrewprintService(t)
	ctx := context.Background()

	bp, apiErr := fx.svc.Create(ctx, fx.userID, validInput())
	require.Nil(t, apiErr)
	assert.Equal(t, model.StatusExperimenting, bp.Status)

	finalized, apiErr := fx.svc.Finalize(ctx, fx.userID, bp.ID)
	require.Nil(t, apiErr)
	assert.Equal(t, model.StatusFinal, finalized.Status)

	_, apiErr = fx.svc.Finalize(ctx, fx.userID, bp.ID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "invalid_status", apiErr.Code)
}

func TestForkStartsFreshExperimentLinkedToParent(t *testing.T) {
	fx := setupBrewprintService(t)
	ctx := context.Background()

	parent, apiErr := fx.svc.Create(ctx, fx.userID, validInput())
	require.Nil(t, apiErr)
	_, apiErr = fx.svc.Finalize(ctx, fx.userID, parent.ID)
	require.Nil(t, apiErr)

	fork, apiErr := fx.svc.Fork(ctx, fx.userID, parent.ID)
	require.Nil(t, apiErr)

	assert.NotEqual(t, parent.ID, fork.ID)
	assert.Equal(t, model.StatusExperimenting, fork.Status)
	require.NotNil(t, fork.ParentID)
	assert.Equal(t, parent.ID, *fork.ParentID)
	assert.Equal(t, parent.CoffeeGrams, fork.CoffeeGrams)
	assert.Equal(t, parent.WaterGrams, fork.WaterGrams)
}

func TestArchivedBrewprintRefusesEditsAndResults(t *testing.T) {
	fx := setupBrewprintService(t)
	ctx := context.Background()

	bp, apiErr := fx.svc.Create(ctx, fx.userID, validInput())
	require.Nil(t, apiErr)
	_, apiErr = fx.svc.Archive(ctx, fx.userID, bp.ID)
	require.Nil(t, apiErr)

	_, apiErr = fx.svc.Update(ctx, fx.userID, bp.ID, validInput())
	require.NotNil(t, apiErr)
	assert.Equal(t, "brewprint_archived", apiErr.Code)

	_, apiErr = fx.svc.SubmitResult(ctx, fx.userID, bp.ID, ResultInput{Rating: 4, DurationSeconds: 190})
	require.NotNil(t, apiErr)
	assert.Equal(t, "brewprint_archived", apiErr.Code)
}

func TestSubmitResultValidatesBeforeAnyWrite(t *testing.T) {
	fx := setupBrewprintService(t)
	ctx := context.Background()

	bp, apiErr := fx.svc.Create(ctx, fx.userID, validInput())
	require.Nil(t, apiErr)

	negativeTDS := -1.2
	tests := []struct {
		name     string
		input    ResultInput
		wantCode string
	}{
		{"rating zero", ResultInput{Rating: 0, DurationSeconds: 190}, "invalid_rating"},
		{"rating six", ResultInput{Rating: 6, DurationSeconds: 190}, "invalid_rating"},
		{"negative tds", ResultInput{Rating: 3, TDSPercent: &negativeTDS}, "invalid_tds"},
		{"negative duration", ResultInput{Rating: 3, DurationSeconds: -1}, "invalid_duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, apiErr := fx.svc.SubmitResult(ctx, fx.userID, bp.ID, tt.input)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}

	count, err := fx.repo.CountResults(ctx, bp.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "rejected submissions must not write")

	// A minimal valid result: rating only, empty notes.
	result, apiErr := fx.svc.SubmitResult(ctx, fx.userID, bp.ID, ResultInput{Rating: 3, Notes: "", DurationSeconds: 190})
	require.Nil(t, apiErr)
	assert.Equal(t, 3, result.Rating)
	assert.Equal(t, "", result.Notes)

	count, err = fx.repo.CountResults(ctx, bp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCrossUserAccessReadsAsNotFound(t *testing.T) {
	fx := setupBrewprintService(t)
	ctx := context.Background()

	bp, apiErr := fx.svc.Create(ctx, fx.userID, validInput())
	require.Nil(t, apiErr)

	_, apiErr = fx.svc.Get(ctx, "someone-else", bp.ID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	// Empty userID is the trusted local mode and sees everything.
	got, apiErr := fx.svc.Get(ctx, "", bp.ID)
	require.Nil(t, apiErr)
	assert.Equal(t, bp.ID, got.ID)
}
