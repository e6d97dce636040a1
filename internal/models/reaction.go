package models

import (
	"time"
)

// Reaction is always embedded in exactly one thought; it never exists on
// its own and is immutable once created.
type Reaction struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	ReactionBody string    `gorm:"type:varchar(280);not null" json:"reactionBody"`
	Username     string    `gorm:"type:varchar(50);not null" json:"username"`
	ThoughtID    uint64    `gorm:"index;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
