package domain

import (
	"strings" // For blank-field checks
	"time"    // Time for creation timestamps
)

// DateLayout is the display format of BlogPost.Date, e.g. "April 05, 2024"
const DateLayout = "January 02, 2006"

// BlogPost Model
type BlogPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                                                     // Primary key
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`                                                          // Foreign key to User
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE" json:"author"`                            // Post author
	Title     string    `gorm:"size:250;uniqueIndex;not null" json:"title"`                                               // Unique title
	Subtitle  string    `gorm:"size:250;not null" json:"subtitle"`                                                        // Subtitle
	Date      string    `gorm:"size:250;not null" json:"date"`                                                            // Display date, set once
	Body      string    `gorm:"type:text;not null" json:"body"`                                                           // Rich text body
	ImgURL    string    `gorm:"size:250;not null" json:"img_url"`                                                         // Header image URL
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                                  // Sort key, set once
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"comments,omitempty"` // Comments on the post
}

// TableName keeps the table name stable regardless of naming strategy
func (BlogPost) TableName() string {
	return "blog_posts"
}

// PostFields are the author-editable fields of a post
type PostFields struct {
	Title    string `json:"title" binding:"required,max=250"`
	Subtitle string `json:"subtitle" binding:"required,max=250"`
	Body     string `json:"body" binding:"required"`
	ImgURL   string `json:"img_url" binding:"required,url,max=250"`
}

// Validate rejects blank required fields
func (f PostFields) Validate() error {
	for _, v := range []string{f.Title, f.Subtitle, f.Body, f.ImgURL} {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

// Apply overwrites the editable fields of p; author and dates are left alone
func (f PostFields) Apply(p *BlogPost) {
	p.Title = f.Title
	p.Subtitle = f.Subtitle
	p.Body = f.Body
	p.ImgURL = f.ImgURL
}
