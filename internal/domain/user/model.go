package user

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Role constants
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleUser}

// HashCost is the bcrypt cost used for new password hashes. Tests lower it.
var HashCost = 12

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// Domain errors
var (
	ErrEmptyUsername   = errors.New("username is required")
	ErrEmptyPassword   = errors.New("password is required")
	ErrInvalidRole     = errors.New("role must be one of: admin, user")
	ErrEmptyEmail      = errors.New("email is required")
	ErrEmptyPhone      = errors.New("phone is required")
	ErrWrongPassword   = errors.New("incorrect password")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// User is one record of the users collection.
// INVARIANT: Username is unique across the collection (enforced by signup).
type User struct {
	Username string `json:"username"`
	Password string `json:"password"` // bcrypt hash; legacy records may hold plaintext
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Validate checks the record's required fields.
// PRE: User struct is populated
// POST: Returns nil if valid, error describing the first violation otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if u.Password == "" {
		return ErrEmptyPassword
	}
	if !isValidRole(u.Role) {
		return ErrInvalidRole
	}
	return nil
}

// IsAdmin returns true if the user has the admin role.
// INVARIANT: User fields are not mutated
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SetPassword hashes plaintext with bcrypt and stores the hash.
// PRE: plaintext is non-empty and at most MaxPasswordBytes long
// POST: Password holds a bcrypt hash of plaintext, or is unchanged on error
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword compares plaintext against the stored password.
// Legacy plaintext records are compared exactly, in constant time.
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.Password == "" || plaintext == "" {
		return ErrWrongPassword
	}
	if !u.HasHashedPassword() {
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(plaintext)) == 1 {
			return nil
		}
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// HasHashedPassword reports whether Password looks like a bcrypt hash.
func (u *User) HasHashedPassword() bool {
	_, err := bcrypt.Cost([]byte(u.Password))
	return err == nil
}

// WithContact returns a copy with only email and phone replaced.
// POST: Username, Password and Role are unchanged
func (u User) WithContact(email, phone string) User {
	u.Email = email
	u.Phone = phone
	return u
}

// Find returns the index of the record with exactly this username, or -1.
func Find(users []User, username string) int {
	for i, u := range users {
		if u.Username == username {
			return i
		}
	}
	return -1
}

// Authenticate returns the record matching username and password exactly.
// PRE: none
// POST: Returns the matching record and true, or false if none matches
func Authenticate(users []User, username, password string) (User, bool) {
	i := Find(users, username)
	if i < 0 {
		return User{}, false
	}
	if err := users[i].CheckPassword(password); err != nil {
		return User{}, false
	}
	return users[i], true
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
