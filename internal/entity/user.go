package entity

// User is a registered account. Password holds the bcrypt hash.
// Users live in memory only and do not survive a restart.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
}
