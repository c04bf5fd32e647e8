package models

import "time"

// Achievement is one entry in the fixed achievement catalog
type Achievement struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Achieved    bool       `json:"achieved"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}
