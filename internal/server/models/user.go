package models

import (
	"strings"
	"time"
)

// ProfileImagePrefix is the storage namespace for profile images; user
// updates normalize bare filenames under it.
const ProfileImagePrefix = "profiles/"

// User is an OAuth-authenticated account. Email and the provider-scoped
// OauthID are unique.
type User struct {
	ID            int64     `json:"id"`
	Nickname      string    `json:"nickname,omitempty"`
	Email         string    `json:"email"`
	OauthID       string    `json:"-"`
	OauthProvider string    `json:"oauthProvider,omitempty"`
	ProfileImage  string    `json:"profileImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserUpdate carries a partial change set for a user; nil fields preserve
// the prior value.
type UserUpdate struct {
	Nickname     *string `json:"nickname"`
	ProfileImage *string `json:"profileImage"`
}

// ApplyUpdate merges the present fields of u. Profile image references are
// normalized under the profiles/ namespace.
func (usr *User) ApplyUpdate(u UserUpdate) {
	if u.Nickname != nil {
		usr.Nickname = *u.Nickname
	}
	if u.ProfileImage != nil {
		img := *u.ProfileImage
		if img != "" && !strings.HasPrefix(img, ProfileImagePrefix) {
			img = ProfileImagePrefix + img
		}
		usr.ProfileImage = img
	}
}
