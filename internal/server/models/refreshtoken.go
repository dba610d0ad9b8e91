package models

import "time"

// RefreshToken is a server-stored opaque token used to mint new access
// tokens; rotated on every use.
type RefreshToken struct {
	UserID  int64
	Token   string
	Expires time.Time
}
