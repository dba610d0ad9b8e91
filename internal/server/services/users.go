package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neogulmap/zonemap/internal/common"
	"github.com/neogulmap/zonemap/internal/dbx"
	"github.com/neogulmap/zonemap/internal/logging"
	"github.com/neogulmap/zonemap/internal/server/auth"
	"github.com/neogulmap/zonemap/internal/server/config"
	"github.com/neogulmap/zonemap/internal/server/models"
	"github.com/neogulmap/zonemap/internal/server/repositories/repomanager"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService owns accounts and the token lifecycle. Refresh tokens are
// opaque, stored server-side, and rotated on every use.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	images                       *ImageService
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	logger                       logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, images *ImageService,
	cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		images:                       images,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		logger:                       logger.With("component", "users"),
	}
}

// Register creates an account. When the same oauth identity registers
// again the existing account is returned instead, so provider logins are
// idempotent. A duplicate email under a different identity yields
// common.ErrConflict.
func (s *UserService) Register(ctx context.Context, user *models.User) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if user.OauthProvider != "" && user.OauthID != "" {
		existing, err := repo.GetByOauthID(ctx, user.OauthProvider, user.OauthID)
		if err == nil {
			s.logger.Info(ctx, "existing user logged in", "id", existing.ID)
			return existing, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "id", created.ID, "email", created.Email)
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

// Update merges the change set into the account. A replacement profile
// image follows the staged lifecycle.
func (s *UserService) Update(ctx context.Context, id int64, upd models.UserUpdate, image *Upload) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := user.ProfileImage

	var tempName, finalName string
	if image != nil {
		tempName, finalName, err = s.images.Stage(ctx, image.Data, KindProfile, image.Name, image.ContentType)
		if err != nil {
			return nil, err
		}
		upd.ProfileImage = &finalName
	}

	user.ApplyUpdate(upd)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		updated, err := s.repomanager.Users(tx).Update(ctx, user)
		if err != nil {
			return err
		}
		user = updated
		return nil
	})

	if err != nil {
		if tempName != "" {
			s.images.Discard(ctx, tempName)
		}
		return nil, err
	}

	if tempName != "" {
		if err := s.images.Confirm(ctx, tempName, finalName); err != nil {
			s.logger.Error(ctx, "profile image promote failed after commit", "user", user.ID, "error", err.Error())
		}
		if oldImage != "" && oldImage != user.ProfileImage {
			s.images.Delete(ctx, strings.TrimPrefix(oldImage, models.ProfileImagePrefix))
		}
	}

	s.logger.Info(ctx, "user updated", "id", user.ID)
	return user, nil
}

// Delete removes the account and its profile image. Stored refresh tokens
// go with the account row via the schema's cascade.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if user.ProfileImage != "" {
		s.images.Delete(ctx, strings.TrimPrefix(user.ProfileImage, models.ProfileImagePrefix))
	}

	s.logger.Info(ctx, "user deleted", "id", id)
	return nil
}

// IssueTokens mints a fresh access/refresh pair for the user.
func (s *UserService) IssueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	return s.generateTokenPair(ctx, user)
}

// RefreshToken rotates the pair: the presented refresh token is consumed
// and a new pair is minted in the same transaction. An expired token
// yields common.ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("error loading token owner: %w", err)
	}

	var tokenPair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		tokenPair, err = s.generateTokenPairTx(ctx, tx, user)
		if err != nil {
			return fmt.Errorf("error generating token pair: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// NeedsReissue reports whether the access token is within the near-expiry
// window and should be replaced. Unparseable tokens count as near expiry.
func (s *UserService) NeedsReissue(accessToken string) bool {
	return auth.IsNearExpiry(accessToken, s.jwtSecret)
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User) (*TokenPair, error) {
	return s.generateTokenPairTx(ctx, s.db, user)
}

func (s *UserService) generateTokenPairTx(ctx context.Context, db dbx.DBTX, user *models.User) (*TokenPair, error) {
	accessToken, err := auth.Issue(user, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	refreshToken, err := auth.NewRefreshToken()
	if err != nil {
		return nil, common.ErrInternal
	}

	if err := s.repomanager.RefreshTokens(db).Create(ctx, user.ID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
