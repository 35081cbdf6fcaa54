package client

// Role is the fixed set of identities the clinic recognizes.
type Role string

const (
	RolePatient Role = "patient"
	RoleStaff   Role = "staff"
	RoleDoctor  Role = "doctor"
)

// User is an authenticated identity. Password is only populated on the way
// into registration and never comes back from the API.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

// Credentials is what a successful login yields: the identity plus the
// bearer token the API issued for it.
type Credentials struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
