package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinerate/proj/internal/api/tasks"
	"cinerate/proj/internal/config"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/lib/logger"
	"cinerate/proj/internal/lib/validator"
	"cinerate/proj/internal/services"
	"cinerate/proj/internal/storage/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		AppSecret: testSecret,
		Storage:   config.Storage{Driver: config.StorageDriverMemory},
		Aggregator: config.Aggregator{
			MaxRetries: 2,
			Timeout:    time.Second,
		},
		Tasks: config.Tasks{Workers: 1, QueueSize: 10},
	}
}

type testEnv struct {
	app     *Application
	store   *memory.Models
	handler http.Handler
}

// newTestEnv wires the whole application on top of the in-memory store.
// wrap, when set, may replace parts of the storage before services are built.
func newTestEnv(t *testing.T, cfg *config.Config, wrap func(*services.Storage)) *testEnv {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	log := logger.Discard()
	db := memory.NewDB()
	store := memory.New(db)
	storage := services.NewMemoryStorage(store)
	if wrap != nil {
		wrap(&storage)
	}
	bgTasks := tasks.New(log, cfg.Tasks.Workers, cfg.Tasks.QueueSize)
	bgTasks.Run()
	t.Cleanup(func() { bgTasks.Shutdown(context.Background()) })
	v := validator.New()
	svcs, err := services.New(log, cfg, storage, bgTasks, v)
	require.NoError(t, err)
	app := NewApplication(cfg, log, svcs, v, db)
	return &testEnv{app: app, store: store, handler: app.routes()}
}

func NewTestApplication(cfg *config.Config, t *testing.T) *Application {
	return newTestEnv(t, cfg, nil).app
}

func (e *testEnv) seedMovie(t *testing.T, title string) *models.Movie {
	t.Helper()
	movie, err := e.store.Movie.Insert(context.Background(), &models.Movie{Title: title, Year: 2000, Runtime: 100})
	require.NoError(t, err)
	return movie
}

func signTestToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// do sends a request as userID. Zero means anonymous.
func (e *testEnv) do(t *testing.T, method, path string, body any, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, userID))
	}
	recorder := httptest.NewRecorder()
	e.handler.ServeHTTP(recorder, req)
	return recorder
}

type testResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp), recorder.Body.String())
	return resp
}

func decodeField(t *testing.T, resp testResponse, field string, dst any) {
	t.Helper()
	raw, ok := resp.Data[field]
	require.True(t, ok, fmt.Sprintf("response has no %q field", field))
	require.NoError(t, json.Unmarshal(raw, dst))
}
