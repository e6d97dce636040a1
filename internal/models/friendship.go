package models

import "time"

// Friendship is the join row backing User.Friends. The composite primary
// key is what gives the friend list its set semantics: inserting the same
// pair again conflicts instead of duplicating.
type Friendship struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	FriendID  uint64    `gorm:"primarykey" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}
