package models

import (
	"testing"
	"time"
)

func strPtr(s string) *string    { return &s }
func f64Ptr(f float64) *float64  { return &f }

func TestZoneApplyUpdate_PartialMerge(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	z := Zone{
		ID:        7,
		Region:    "Seoul",
		Type:      "open",
		Latitude:  37.5665,
		Longitude: 126.9780,
		Date:      created,
		Address:   "110 Sejong-daero",
		Image:     "zone_old.jpg",
	}

	z.ApplyUpdate(ZoneUpdate{
		Region:   strPtr("Busan"),
		Latitude: f64Ptr(35.1796),
	})

	if z.Region != "Busan" || z.Latitude != 35.1796 {
		t.Fatalf("present fields not applied: %+v", z)
	}
	if z.Type != "open" || z.Address != "110 Sejong-daero" || z.Image != "zone_old.jpg" {
		t.Fatalf("absent fields were overwritten: %+v", z)
	}
	if z.ID != 7 || !z.Date.Equal(created) {
		t.Fatalf("identity fields mutated: %+v", z)
	}
}

func TestZoneApplyUpdate_EmptyStringOverwrites(t *testing.T) {
	t.Parallel()

	z := Zone{Description: "shaded area"}
	z.ApplyUpdate(ZoneUpdate{Description: strPtr("")})
	if z.Description != "" {
		t.Fatalf("explicit empty value must overwrite, got %q", z.Description)
	}
}

func TestUserApplyUpdate_NicknameOnlyKeepsProfileImage(t *testing.T) {
	t.Parallel()

	u := User{Nickname: "raccoon", ProfileImage: "profiles/old.png"}
	u.ApplyUpdate(UserUpdate{Nickname: strPtr("tanuki")})

	if u.Nickname != "tanuki" {
		t.Fatalf("nickname not applied: %+v", u)
	}
	if u.ProfileImage != "profiles/old.png" {
		t.Fatalf("profile image must be untouched: %+v", u)
	}
}

func TestUserApplyUpdate_ProfileImagePrefix(t *testing.T) {
	t.Parallel()

	u := User{}
	u.ApplyUpdate(UserUpdate{ProfileImage: strPtr("new.png")})
	if u.ProfileImage != "profiles/new.png" {
		t.Fatalf("bare filename not namespaced: %q", u.ProfileImage)
	}

	u.ApplyUpdate(UserUpdate{ProfileImage: strPtr("profiles/kept.png")})
	if u.ProfileImage != "profiles/kept.png" {
		t.Fatalf("already-prefixed name mangled: %q", u.ProfileImage)
	}
}

func TestValidation(t *testing.T) {
	t.Parallel()

	if !ValidLatitude(90) || !ValidLatitude(-90) || ValidLatitude(90.0001) {
		t.Fatal("latitude bounds")
	}
	if !ValidLongitude(180) || !ValidLongitude(-180) || ValidLongitude(-180.5) {
		t.Fatal("longitude bounds")
	}
	if ValidRadiusKm(0.05) || !ValidRadiusKm(0.1) || !ValidRadiusKm(100) || ValidRadiusKm(101) {
		t.Fatal("radius bounds")
	}
	if ValidZoneAddress("abc") || !ValidZoneAddress("110 Sejong-daero") {
		t.Fatal("address length")
	}
	if ValidKeyword("a") || !ValidKeyword("카페") || ValidKeyword("") {
		t.Fatal("keyword length")
	}
	if !ValidNickname("raccoon1") || ValidNickname("a") || ValidNickname("has space") {
		t.Fatal("nickname pattern")
	}
}
