package domain

// Account Model
type Account struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"unique;not null" json:"username"`  // Unique login name
	FullName  string `json:"full_name"`                        // Display name
	Email     string `gorm:"index" json:"email"`               // Contact address
	Password  string `gorm:"not null" json:"-"`                // Bcrypt hash, never serialized
	Role      string `gorm:"default:user" json:"role"`         // Role: user or admin
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}
