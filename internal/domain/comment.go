package domain

import "time" // Time for creation timestamps

// Comment Model
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`              // Primary key
	PostID    uint      `gorm:"not null;index" json:"post_id"`     // Foreign key to BlogPost
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`   // Foreign key to User
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"` // Comment author
	Text      string    `gorm:"type:text;not null" json:"text"`    // Comment text
	CreatedAt time.Time `json:"created_at"`                        // Creation time
}
