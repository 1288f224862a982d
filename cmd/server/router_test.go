package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primetrade/taskboard-api/internal/config"
	"github.com/primetrade/taskboard-api/internal/domain"
	"github.com/primetrade/taskboard-api/internal/mocks"
	"github.com/primetrade/taskboard-api/internal/service"
	"github.com/primetrade/taskboard-api/internal/service/auth"
)

// newTestApplication wires an application against in-memory stores so the
// full router and middleware chain can be exercised without Postgres.
func newTestApplication(t *testing.T) (*application, *mocks.MockUserStore, *mocks.MockTaskStore) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
		Auth: config.AuthConfig{
			JWTSecret:            "test-jwt-secret-that-is-32-chars!!",
			TokenLifetimeMinutes: 15,
			BcryptCost:           4,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)

	userStore := mocks.NewMockUserStore()
	taskStore := mocks.NewMockTaskStore()
	logger := slog.Default()

	app := &application{
		config:           cfg,
		logger:           logger,
		userStore:        userStore,
		taskStore:        taskStore,
		jwtService:       jwtService,
		passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: true},
		taskService:      service.NewTaskService(taskStore, nil, logger),
	}

	return app, userStore, taskStore
}

// loginAs registers nothing; it seeds the store directly and returns a
// token issued by the real JWT service.
func loginAs(t *testing.T, app *application, role domain.Role) string {
	t.Helper()

	user, err := domain.NewUser("router-test@example.com", "Password123", role)
	require.NoError(t, err)
	require.NoError(t, app.userStore.Create(context.Background(), user))

	token, err := app.jwtService.GenerateToken(context.Background(), user.ID, user.Role)
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRouterPublicEndpoints(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	t.Run("health check", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "healthy")
	})

	t.Run("API info", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, "/api/v1/", "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "taskboard-api")
	})

	t.Run("register and login", func(t *testing.T) {
		register := doRequest(router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email":    "flow@example.com",
			"password": "Password123",
		})
		require.Equal(t, http.StatusCreated, register.Code)

		login := doRequest(router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "flow@example.com",
			"password": "Password123",
		})
		require.Equal(t, http.StatusOK, login.Code)
		assert.Contains(t, login.Body.String(), "token")
	})
}

func TestRouterTaskFlow(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	router := app.setupRouter()
	token := loginAs(t, app, domain.RoleUser)

	t.Run("task endpoints require authentication", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized,
			doRequest(router, http.MethodGet, "/api/v1/tasks", "", nil).Code)
		assert.Equal(t, http.StatusUnauthorized,
			doRequest(router, http.MethodPost, "/api/v1/tasks", "", map[string]any{"title": "x"}).Code)
	})

	t.Run("full create, read, update, delete cycle", func(t *testing.T) {
		created := doRequest(router, http.MethodPost, "/api/v1/tasks", token, map[string]any{
			"title": "End to end",
		})
		require.Equal(t, http.StatusCreated, created.Code)

		var task struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &task))

		listed := doRequest(router, http.MethodGet, "/api/v1/tasks", token, nil)
		require.Equal(t, http.StatusOK, listed.Code)
		assert.Contains(t, listed.Body.String(), "End to end")

		updated := doRequest(router, http.MethodPut, "/api/v1/tasks/"+task.ID, token, map[string]any{
			"status": "completed",
		})
		require.Equal(t, http.StatusOK, updated.Code)
		assert.Contains(t, updated.Body.String(), "completed")

		deleted := doRequest(router, http.MethodDelete, "/api/v1/tasks/"+task.ID, token, nil)
		assert.Equal(t, http.StatusOK, deleted.Code)
		assert.Contains(t, deleted.Body.String(), "Task deleted successfully")

		missing := doRequest(router, http.MethodGet, "/api/v1/tasks/"+task.ID, token, nil)
		assert.Equal(t, http.StatusNotFound, missing.Code)
	})

	t.Run("regular user cannot reach admin endpoints", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, "/api/v1/admin/tasks", token, nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestRouterAdminFlow(t *testing.T) {
	t.Parallel()

	app, _, taskStore := newTestApplication(t)
	router := app.setupRouter()
	adminToken := loginAs(t, app, domain.RoleAdmin)

	userTask, err := domain.NewTask(uuid.New(), "Someone's task", "", domain.TaskStatusPending)
	require.NoError(t, err)
	require.NoError(t, taskStore.Create(context.Background(), userTask))

	t.Run("admin lists every user's tasks", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, "/api/v1/admin/tasks", adminToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Someone's task")
	})

	t.Run("admin deletes any task", func(t *testing.T) {
		recorder := doRequest(router, http.MethodDelete,
			"/api/v1/admin/tasks/"+userTask.ID.String(), adminToken, nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, taskStore.Tasks)
	})
}
