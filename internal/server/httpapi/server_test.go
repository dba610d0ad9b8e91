package httpapi

import (
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neogulmap/zonemap/internal/logging"
	"github.com/neogulmap/zonemap/internal/server/cache"
	"github.com/neogulmap/zonemap/internal/server/config"
	"github.com/neogulmap/zonemap/internal/server/repositories/repomanager"
	"github.com/neogulmap/zonemap/internal/server/search"
	"github.com/neogulmap/zonemap/internal/server/services"
	"github.com/neogulmap/zonemap/internal/server/storage"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}

	logger := testLogger()
	store := storage.NewLocal(t.TempDir(), logger)
	images := services.NewImageService(store, logger)
	manager := &repomanager.PostgresRepositoryManager{}

	cfg := &config.Config{
		SecretKey:                    string(testSecret),
		AccessTokenValidityDuration:  30 * time.Minute,
		RefreshTokenValidityDuration: 24 * time.Hour,
	}

	zones := services.NewZoneService(db, manager, images, search.NewEngine(),
		cache.NewZoneCache(nil, time.Minute, logger), logger)
	users := services.NewUserService(db, manager, images, cfg, logger)

	h := NewHandler(zones, users, images, logger)
	return Router(h, testSecret, logger), mock, db
}

func TestRouter_GetZone(t *testing.T) {
	router, mock, db := newTestRouter(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM zones WHERE id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "region", "type", "subtype", "description",
			"latitude", "longitude", "size", "date", "address", "creator", "image",
		}).AddRow(3, "Seoul", "open", "", "", 37.5665, 126.9780, "", time.Now(), "some address 1", "", ""))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/zones/3", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["data"].(map[string]any)["id"])
}

func TestRouter_GetZone_NotFound(t *testing.T) {
	router, mock, db := newTestRouter(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM zones WHERE id = \$1`).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/zones/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Z001", body["code"])
	assert.Equal(t, "/zones/99", body["path"])
}

func TestRouter_ListZones_ByAddress(t *testing.T) {
	router, mock, db := newTestRouter(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM zones WHERE address = \$1`).
		WithArgs("Seoul Mapo-gu 12").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "region", "type", "subtype", "description",
			"latitude", "longitude", "size", "date", "address", "creator", "image",
		}).AddRow(5, "Seoul", "open", "", "", 37.55, 126.91, "", time.Now(), "Seoul Mapo-gu 12", "", ""))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/zones?address=Seoul+Mapo-gu+12", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(5), body["data"].(map[string]any)["id"])
}

func TestRouter_ListZones_ByAddress_NotFound(t *testing.T) {
	router, mock, db := newTestRouter(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM zones WHERE address = \$1`).
		WithArgs("nowhere 1").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/zones?address=nowhere+1", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Z001", body["code"])
}

func TestRouter_SearchZones_BadRadius(t *testing.T) {
	router, _, db := newTestRouter(t)
	defer db.Close()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/zones/search?latitude=37.5&longitude=127&radius=1000", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "L008", body["code"])
}

func TestRouter_CreateZone_RequiresAuth(t *testing.T) {
	router, _, db := newTestRouter(t)
	defer db.Close()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/zones", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "", body["code"])
}

func TestRouter_Health(t *testing.T) {
	router, _, db := newTestRouter(t)
	defer db.Close()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	router, _, db := newTestRouter(t)
	defer db.Close()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
