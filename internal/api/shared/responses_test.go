package shared_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primetrade/taskboard-api/internal/api/shared"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("includes trace ID when the context carries one", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/test", nil)
		r = r.WithContext(shared.SetTraceID(r.Context()))

		shared.RespondWithError(w, r, http.StatusNotFound, "task not found")

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "task not found", resp.Error)
		assert.NotEmpty(t, resp.TraceID)
	})

	t.Run("omits trace ID when absent", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/test", nil)

		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request")

		assert.NotContains(t, w.Body.String(), "trace_id")
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	t.Run("never exposes the raw error to the client", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/test", nil)
		internalErr := errors.New("pq: connection to postgres://user:secret@db failed")

		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"internal server error", internalErr)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "internal server error", resp.Error)
		assert.NotContains(t, w.Body.String(), "secret")
		assert.NotContains(t, w.Body.String(), "postgres://")
	})

	t.Run("handles a nil error", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/test", nil)

		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "authentication required", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
