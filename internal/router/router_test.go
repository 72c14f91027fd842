package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"brewbuddy/internal/db"
	"brewbuddy/internal/handler"
	"brewbuddy/internal/repository"
	"brewbuddy/internal/router"
	"brewbuddy/internal/service"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type brewprintEnvelope struct {
	Brewprint struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Status   string  `json:"status"`
		ParentID *string `json:"parentId"`
	} `json:"brewprint"`
}

type resultsEnvelope struct {
	Results []struct {
		Rating int    `json:"rating"`
		Notes  string `json:"notes"`
	} `json:"results"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestBrewprintLifecycle(t *testing.T) {
	engine := setupTestEngine(t)
	user := registerUser(t, engine, "user1@example.com", "123456")

	created := createBrewprint(t, engine, user.Token, "Morning V60")
	if created.Brewprint.Status != "experimenting" {
		t.Fatalf("expected new brewprint to be experimenting, got %s", created.Brewprint.Status)
	}

	// Finalize, then fork: the fork starts a fresh experiment linked back to
	// its parent.
	status, body := requestJSON(t, engine, http.MethodPost, "/api/brewprints/"+created.Brewprint.ID+"/finalize", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on finalize, got %d: %s", status, string(body))
	}

	status, body = requestJSON(t, engine, http.MethodPost, "/api/brewprints/"+created.Brewprint.ID+"/finalize", user.Token, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 finalizing twice, got %d", status)
	}
	var conflict apiErrorEnvelope
	if err := json.Unmarshal(body, &conflict); err != nil {
		t.Fatalf("unmarshal conflict response: %v", err)
	}
	if conflict.Error.Code != "invalid_status" {
		t.Fatalf("expected invalid_status, got %s", conflict.Error.Code)
	}

	status, body = requestJSON(t, engine, http.MethodPost, "/api/brewprints/"+created.Brewprint.ID+"/fork", user.Token, nil)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 on fork, got %d: %s", status, string(body))
	}
	var fork brewprintEnvelope
	if err := json.Unmarshal(body, &fork); err != nil {
		t.Fatalf("unmarshal fork response: %v", err)
	}
	if fork.Brewprint.Status != "experimenting" {
		t.Fatalf("expected fork to be experimenting, got %s", fork.Brewprint.Status)
	}
	if fork.Brewprint.ParentID == nil || *fork.Brewprint.ParentID != created.Brewprint.ID {
		t.Fatal("expected fork to reference its parent")
	}

	// Archived brewprints refuse edits.
	status, _ = requestJSON(t, engine, http.MethodPost, "/api/brewprints/"+created.Brewprint.ID+"/archive", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on archive, got %d", status)
	}
	status, body = requestJSON(t, engine, http.MethodPut, "/api/brewprints/"+created.Brewprint.ID, user.Token, brewprintBody("Renamed"))
	if status != http.StatusConflict {
		t.Fatalf("expected 409 updating archived brewprint, got %d: %s", status, string(body))
	}
}

func TestSubmitResultValidation(t *testing.T) {
	engine := setupTestEngine(t)
	user := registerUser(t, engine, "user1@example.com", "123456")
	created := createBrewprint(t, engine, user.Token, "Morning V60")
	resultsPath := "/api/brewprints/" + created.Brewprint.ID + "/results"

	// Rating outside 1..5 is rejected before anything is stored.
	status, body := requestJSON(t, engine, http.MethodPost, resultsPath, user.Token, map[string]interface{}{
		"rating":          0,
		"notes":           "never persisted",
		"durationSeconds": 190,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for rating 0, got %d: %s", status, string(body))
	}
	var badRating apiErrorEnvelope
	if err := json.Unmarshal(body, &badRating); err != nil {
		t.Fatalf("unmarshal error response: %v", err)
	}
	if badRating.Error.Code != "invalid_rating" {
		t.Fatalf("expected invalid_rating, got %s", badRating.Error.Code)
	}

	// Empty notes are fine; rating is the only required field.
	status, body = requestJSON(t, engine, http.MethodPost, resultsPath, user.Token, map[string]interface{}{
		"rating":          3,
		"notes":           "",
		"durationSeconds": 190,
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for valid result, got %d: %s", status, string(body))
	}

	status, listRaw := requestJSON(t, engine, http.MethodGet, resultsPath, user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 listing results, got %d", status)
	}
	var results resultsEnvelope
	if err := json.Unmarshal(listRaw, &results); err != nil {
		t.Fatalf("unmarshal results: %v", err)
	}
	if len(results.Results) != 1 {
		t.Fatalf("expected exactly one stored result, got %d", len(results.Results))
	}
	if results.Results[0].Rating != 3 || results.Results[0].Notes != "" {
		t.Fatalf("unexpected stored result: %+v", results.Results[0])
	}
}

func TestBrewprintUserIsolation(t *testing.T) {
	engine := setupTestEngine(t)
	owner := registerUser(t, engine, "owner@example.com", "123456")
	intruder := registerUser(t, engine, "intruder@example.com", "123456")

	created := createBrewprint(t, engine, owner.Token, "Secret recipe")

	// Another user's brewprint looks like it does not exist.
	status, body := requestJSON(t, engine, http.MethodGet, "/api/brewprints/"+created.Brewprint.ID, intruder.Token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign brewprint, got %d: %s", status, string(body))
	}

	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/brewprints/"+created.Brewprint.ID, intruder.Token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 deleting foreign brewprint, got %d", status)
	}

	status, _ = requestJSON(t, engine, http.MethodGet, "/api/brewprints/"+created.Brewprint.ID, owner.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("owner should still see the brewprint, got %d", status)
	}
}

func TestCORSPreflight(t *testing.T) {
	engine := setupTestEngine(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	recorder := httptest.NewRecorder()

	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", recorder.Code)
	}
	if recorder.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin header: %s", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
}

func setupTestEngine(t *testing.T) http.Handler {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := db.RunMigrations(database, migrationsDir); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	beanRepo := repository.NewBeanRepository(database)
	equipmentRepo := repository.NewEquipmentRepository(database)
	brewprintRepo := repository.NewBrewprintRepository(database)

	authService := service.NewAuthService(userRepo, "test-secret", 24*time.Hour)
	beanService := service.NewBeanService(beanRepo)
	equipmentService := service.NewEquipmentService(equipmentRepo)
	brewprintService := service.NewBrewprintService(brewprintRepo)

	authHandler := handler.NewAuthHandler(authService)
	beanHandler := handler.NewBeanHandler(beanService)
	equipmentHandler := handler.NewEquipmentHandler(equipmentService)
	brewprintHandler := handler.NewBrewprintHandler(brewprintService)

	return router.New(authService, authHandler, beanHandler, equipmentHandler, brewprintHandler, []string{"http://localhost:5173"})
}

func registerUser(t *testing.T, server http.Handler, email, password string) authResponse {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s failed with status %d: %s", email, status, string(body))
	}
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal register response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("empty token for user %s", email)
	}
	return resp
}

func createBrewprint(t *testing.T, server http.Handler, token, name string) brewprintEnvelope {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodPost, "/api/brewprints", token, brewprintBody(name))
	if status != http.StatusCreated {
		t.Fatalf("create brewprint failed with status %d: %s", status, string(body))
	}
	var resp brewprintEnvelope
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal brewprint response: %v", err)
	}
	if resp.Brewprint.ID == "" {
		t.Fatal("empty brewprint id")
	}
	return resp
}

func brewprintBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":          name,
		"method":        "v60",
		"coffeeGrams":   15,
		"waterGrams":    250,
		"waterTempC":    93,
		"targetSeconds": 180,
	}
}

func requestJSON(
	t *testing.T,
	server http.Handler,
	method, path, token string,
	body interface{},
) (int, []byte) {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder.Code, recorder.Body.Bytes()
}
