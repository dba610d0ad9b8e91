package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neogulmap/zonemap/internal/server/httpapi/errcode"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, http.StatusCreated, "zone created", map[string]int{"id": 5})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "zone created", body["message"])
	assert.Equal(t, float64(5), body["data"].(map[string]any)["id"])
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/zones/99", nil)
	WriteError(w, r, errcode.ZoneNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Z001", body["code"])
	assert.Equal(t, float64(404), body["status"])
	assert.Equal(t, "Not Found", body["error"])
	assert.Equal(t, "/zones/99", body["path"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestWriteUnauthorized_HasEmptyCode(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/zones", nil)
	WriteUnauthorized(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "", body["code"])
	assert.Equal(t, "Unauthorized", body["error"])
}
