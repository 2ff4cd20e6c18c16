package domain

import "time" // Time for creation timestamps

// Roles a user can hold, decided once at registration
const (
	RoleAdmin = "admin" // May create, edit and delete posts
	RoleUser  = "user"  // May comment
)

// User Model
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`                       // Primary key
	Email     string     `gorm:"size:100;uniqueIndex;not null" json:"email"` // Unique email
	Password  string     `gorm:"size:100;not null" json:"-"`                 // bcrypt digest, never serialized
	Name      string     `gorm:"size:100;not null" json:"name"`              // Display name
	Role      string     `gorm:"size:16;not null;default:user" json:"role"`  // Role: user or admin
	CreatedAt time.Time  `json:"created_at"`                                 // Registration time
	Posts     []BlogPost `gorm:"foreignKey:AuthorID" json:"-"`               // Posts written by the user
	Comments  []Comment  `gorm:"foreignKey:AuthorID" json:"-"`               // Comments written by the user
}

// Identity returns the session-facing view of the user
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Identity is an authenticated user as seen by the services
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the identity holds the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Session is an opened login: the bearer token and who it belongs to
type Session struct {
	Token     string    `json:"token"`
	Identity  Identity  `json:"identity"`
	ExpiresAt time.Time `json:"expires_at"`
}
