// Package models holds the persisted record types and their partial-update
// merge rules.
package models

import "time"

// Zone is one physical location entry. Address is unique across all
// records; ID is assigned by the database on creation and never reused.
type Zone struct {
	ID          int       `json:"id"`
	Region      string    `json:"region"`
	Type        string    `json:"type,omitempty"`
	Subtype     string    `json:"subtype,omitempty"`
	Description string    `json:"description,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Size        string    `json:"size,omitempty"`
	Date        time.Time `json:"date"`
	Address     string    `json:"address"`
	User        string    `json:"user,omitempty"`
	Image       string    `json:"image,omitempty"`
}

// ZoneUpdate carries a partial change set for a zone. Nil fields leave the
// current value untouched; non-nil fields overwrite it.
type ZoneUpdate struct {
	Region      *string  `json:"region"`
	Type        *string  `json:"type"`
	Subtype     *string  `json:"subtype"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Size        *string  `json:"size"`
	Address     *string  `json:"address"`
	User        *string  `json:"user"`
	Image       *string  `json:"image"`
}

// ApplyUpdate merges the present fields of u into z. ID and Date are never
// touched by an update.
func (z *Zone) ApplyUpdate(u ZoneUpdate) {
	if u.Region != nil {
		z.Region = *u.Region
	}
	if u.Type != nil {
		z.Type = *u.Type
	}
	if u.Subtype != nil {
		z.Subtype = *u.Subtype
	}
	if u.Description != nil {
		z.Description = *u.Description
	}
	if u.Latitude != nil {
		z.Latitude = *u.Latitude
	}
	if u.Longitude != nil {
		z.Longitude = *u.Longitude
	}
	if u.Size != nil {
		z.Size = *u.Size
	}
	if u.Address != nil {
		z.Address = *u.Address
	}
	if u.User != nil {
		z.User = *u.User
	}
	if u.Image != nil {
		z.Image = *u.Image
	}
}
