// Package models defines the data shapes exchanged with the SightPass
// backend API and cached locally between runs.
package models

import "time"

// User is the backend's account record. It is owned by the session manager
// and mirrored read-only into the persisted session store.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	IsActive     bool       `json:"is_active,omitempty"`
	IsSuperuser  bool       `json:"is_superuser,omitempty"`
	FaceEnrolled bool       `json:"face_enrolled"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// RegisterRequest is the JSON body for account creation.
type RegisterRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
}
