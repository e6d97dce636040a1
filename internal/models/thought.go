package models

import (
	"time"
)

type Thought struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ThoughtText string    `gorm:"type:varchar(280);not null" json:"thoughtText"`
	Username    string    `gorm:"type:varchar(50);index;not null" json:"username"`
	UserID      uint64    `gorm:"index;not null" json:"-"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`

	// Relations
	Reactions []Reaction `gorm:"foreignKey:ThoughtID" json:"reactions,omitempty"`
}

// ReactionCount returns the size of the loaded reaction list.
func (t *Thought) ReactionCount() int {
	return len(t.Reactions)
}
