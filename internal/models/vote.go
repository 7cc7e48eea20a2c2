package models

import (
	"time"
)

// Vote is a like relationship between a user and a post. Existence is the
// whole payload: row present means liked, no row means not liked.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_votes_post_user" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_post_user" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// The composite unique index keeps "at most one vote per (post, user)" true
// at the schema level, the toggle logic only decides insert vs delete.
