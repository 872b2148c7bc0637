package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/instructorhub/internal/httpx"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": "t-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Nil(t, env.Error)
	assert.Equal(t, map[string]any{"id": "t-1"}, env.Data)
}

func TestError_HTTPError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	httpx.Error(w, httpx.ErrForbidden)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "forbidden", env.Error.Code)
	assert.Equal(t, "Access denied", env.Error.Message)
}

func TestError_UnknownErrorNeverLeaksDetails(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	httpx.Error(w, errors.New("pq: connection refused at 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")

	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "internal_error", env.Error.Code)
}

func TestError_WrappedHTTPError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	httpx.Error(w, errors.Join(httpx.ErrNotFound, errors.New("row missing")))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
