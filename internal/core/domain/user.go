package domain

import "time"

type User struct {
	Username    string     `db:"username"`
	Password    string     `db:"password"` // bcrypt hashed
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	Phone       string     `db:"phone"`
	JoinAt      time.Time  `db:"join_at"`
	LastLoginAt *time.Time `db:"last_login_at"`
}

func NewUser(username, hashedPassword, firstName, lastName, phone string) *User {
	return &User{
		Username:  username,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		JoinAt:    time.Now(),
	}
}

// Profile is the public projection of a user, safe to embed in responses
// and message joins. It never carries the password hash.
type Profile struct {
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Phone     string `db:"phone" json:"phone"`
}

func (u *User) Profile() Profile {
	return Profile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
