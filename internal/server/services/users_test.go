package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neogulmap/zonemap/internal/common"
	"github.com/neogulmap/zonemap/internal/server/auth"
	"github.com/neogulmap/zonemap/internal/server/config"
	"github.com/neogulmap/zonemap/internal/server/models"
	"github.com/neogulmap/zonemap/internal/server/repositories/repomanager"
)

func newUserService(t *testing.T) (*UserService, sqlmock.Sqlmock, *stubStore, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}

	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  30 * time.Minute,
		RefreshTokenValidityDuration: 24 * time.Hour,
	}

	store := &stubStore{}
	svc := NewUserService(db, &repomanager.PostgresRepositoryManager{},
		NewImageService(store, testLogger()), cfg, testLogger())

	return svc, mock, store, db
}

func userRow(u *models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "nickname", "email", "oauth_id", "oauth_provider", "profile_image", "created_at",
	}).AddRow(u.ID, u.Nickname, u.Email, u.OauthID, u.OauthProvider, u.ProfileImage, u.CreatedAt)
}

func newUser() *models.User {
	return &models.User{
		ID:            7,
		Nickname:      "raccoon",
		Email:         "raccoon@example.com",
		OauthID:       "oauth-123",
		OauthProvider: "kakao",
		CreatedAt:     time.Now(),
	}
}

func TestRegister_NewIdentity(t *testing.T) {
	svc, mock, _, db := newUserService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM users WHERE oauth_provider = \$1 AND oauth_id = \$2`).
		WithArgs("kakao", "oauth-123").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("raccoon", "raccoon@example.com", "oauth-123", "kakao", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(7), time.Now()))

	user := newUser()
	user.ID = 0
	created, err := svc.Register(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_ExistingIdentityLogsIn(t *testing.T) {
	svc, mock, _, db := newUserService(t)
	defer db.Close()

	// repeat login with the same oauth identity must not insert
	mock.ExpectQuery(`SELECT .* FROM users WHERE oauth_provider = \$1 AND oauth_id = \$2`).
		WithArgs("kakao", "oauth-123").
		WillReturnRows(userRow(newUser()))

	user, err := svc.Register(context.Background(), newUser())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueTokens(t *testing.T) {
	svc, mock, _, db := newUserService(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+refresh_tokens`).
		WithArgs(int64(7), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pair, err := svc.IssueTokens(context.Background(), newUser())
	require.NoError(t, err)

	assert.Len(t, pair.RefreshToken, 64)

	claims, err := auth.Parse(pair.AccessToken, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, "raccoon@example.com", claims.Subject)
	assert.Equal(t, int64(7), claims.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_Rotates(t *testing.T) {
	svc, mock, _, db := newUserService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT user_id, expires FROM refresh_tokens WHERE token = \$1`).
		WithArgs("old-token").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires"}).
			AddRow(int64(7), time.Now().Add(time.Hour)))
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(userRow(newUser()))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE token = \$1`).
		WithArgs("old-token").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+refresh_tokens`).
		WithArgs(int64(7), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	pair, err := svc.RefreshToken(context.Background(), "old-token")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, "old-token", pair.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_Expired(t *testing.T) {
	svc, mock, _, db := newUserService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT user_id, expires FROM refresh_tokens WHERE token = \$1`).
		WithArgs("stale").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires"}).
			AddRow(int64(7), time.Now().Add(-time.Minute)))

	_, err := svc.RefreshToken(context.Background(), "stale")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestRefreshToken_Unknown(t *testing.T) {
	svc, mock, _, db := newUserService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT user_id, expires FROM refresh_tokens WHERE token = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.RefreshToken(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserUpdate_ProfileImageLifecycle(t *testing.T) {
	svc, mock, store, db := newUserService(t)
	defer db.Close()

	existing := newUser()
	existing.ProfileImage = "profiles/profile_old.jpg"

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(userRow(existing))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	nickname := "newname"
	user, err := svc.Update(context.Background(), 7, models.UserUpdate{Nickname: &nickname}, &Upload{
		Data: []byte("avatar"), Name: "avatar.jpg", ContentType: "image/jpeg",
	})
	require.NoError(t, err)

	assert.Equal(t, "newname", user.Nickname)
	assert.Equal(t, "profiles/profile_20250301_120000_1a2b3c4d.jpg", user.ProfileImage)
	require.Len(t, store.confirmed, 1)
	assert.Contains(t, store.deleted, "profile_old.jpg")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDelete(t *testing.T) {
	svc, mock, store, db := newUserService(t)
	defer db.Close()

	existing := newUser()
	existing.ProfileImage = "profiles/profile_x.jpg"

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(userRow(existing))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), 7))
	assert.Contains(t, store.deleted, "profile_x.jpg")
}

func TestNeedsReissue(t *testing.T) {
	svc, _, _, db := newUserService(t)
	defer db.Close()

	fresh, err := auth.Issue(newUser(), []byte("test-secret"), time.Hour)
	require.NoError(t, err)
	assert.False(t, svc.NeedsReissue(fresh))

	closeToExpiry, err := auth.Issue(newUser(), []byte("test-secret"), 2*time.Minute)
	require.NoError(t, err)
	assert.True(t, svc.NeedsReissue(closeToExpiry))

	assert.True(t, svc.NeedsReissue("garbage"))
}
