package teller

import (
	"fmt"
	"strings"
)

// User is a login of the teller. Users are unrelated to accounts, they are
// only used to authenticate.
type User struct {
	Login    string `json:"login" yaml:"login"`
	Password string `json:"password" yaml:"password"`
	Name     string `json:"name" yaml:"name"`
}

// DefaultUsers is the set of users a new ledger is seeded with.
func DefaultUsers() []User {
	return []User{
		{Login: "admin", Password: "1234", Name: "Administrator"},
		{Login: "gerente", Password: "ger123", Name: "Manager"},
		{Login: "cliente", Password: "cli123", Name: "Client"},
	}
}

// Validate checks that no field is blank. Logins are case sensitive and kept verbatim.
func (u User) Validate() error {
	switch {
	case strings.TrimSpace(u.Login) == "":
		return fmt.Errorf("login: %w", ErrEmptyField)
	case u.Password == "":
		return fmt.Errorf("password: %w", ErrEmptyField)
	case strings.TrimSpace(u.Name) == "":
		return fmt.Errorf("name: %w", ErrEmptyField)
	}
	return nil
}
