package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/neogulmap/zonemap/internal/server/httpapi/errcode"
	"github.com/neogulmap/zonemap/internal/server/models"
)

// registerRequest is the JSON body of an account registration.
type registerRequest struct {
	Nickname      string `json:"nickname"`
	Email         string `json:"email"`
	OauthID       string `json:"oauthId"`
	OauthProvider string `json:"oauthProvider"`
}

// tokenResponse carries a freshly minted token pair, optionally with the
// owning account.
type tokenResponse struct {
	User         *models.User `json:"user,omitempty"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, errcode.InvalidFormat)
		return
	}

	if req.Email == "" || req.OauthID == "" || req.OauthProvider == "" {
		WriteError(w, r, errcode.RequiredFieldMissing)
		return
	}
	if req.Nickname != "" && !models.ValidNickname(req.Nickname) {
		WriteError(w, r, errcode.ValidationError)
		return
	}

	user, err := h.users.Register(r.Context(), &models.User{
		Nickname:      req.Nickname,
		Email:         req.Email,
		OauthID:       req.OauthID,
		OauthProvider: req.OauthProvider,
	})
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}

	pair, err := h.users.IssueTokens(r.Context(), user)
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "user registered", tokenResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := UserID(r.Context())
	if !ok {
		WriteUnauthorized(w, r)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "user found", user)
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	id, ok := UserID(r.Context())
	if !ok {
		WriteUnauthorized(w, r)
		return
	}

	var upd models.UserUpdate
	upload, code := readMultipart(r, &upd)
	if code != nil {
		WriteError(w, r, *code)
		return
	}

	if upd.Nickname != nil && !models.ValidNickname(*upd.Nickname) {
		WriteError(w, r, errcode.ValidationError)
		return
	}

	user, err := h.users.Update(r.Context(), id, upd, upload)
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "user updated", user)
}

func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	id, ok := UserID(r.Context())
	if !ok {
		WriteUnauthorized(w, r)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		h.writeUserError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "user deleted", nil)
}

// refreshRequest is the JSON body of a token refresh.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		WriteError(w, r, errcode.RequiredFieldMissing)
		return
	}

	pair, err := h.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		WriteUnauthorized(w, r)
		return
	}

	WriteSuccess(w, http.StatusOK, "token refreshed", tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
