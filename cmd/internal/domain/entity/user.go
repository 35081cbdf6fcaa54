package entity

// User is an authenticated identity. Password holds the bcrypt hash and is
// nil for roles that log in without one (demo staff/doctor injection).
type User struct {
	ID       string `gorm:"primaryKey"`
	Username string `gorm:"not null"`
	Name     string `gorm:"not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Role     string `gorm:"not null"`
	Password *string
}
