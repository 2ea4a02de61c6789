package model

// User role constants
const (
	UserRoleAdmin  = "admin"
	UserRoleDoctor = "doctor"
	UserRoleNurse  = "nurse"
)

// User is a seeded account. The password is kept in plaintext and never
// serialized.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Password   string `json:"-"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// UserView is the sanitized form returned to clients.
type UserView struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func (u User) GetID() string {
	return u.ID
}

func (u User) Clone() User {
	return u
}

func (u User) View() UserView {
	return UserView{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		Department: u.Department,
	}
}
