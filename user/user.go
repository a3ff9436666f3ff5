package user

import (
	"strings"
	"time"

	"cinelog/errs"
)

var (
	ErrInvalidName        = errs.Errorf(errs.EINVALID, "user: invalid name")
	ErrInvalidEmail       = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrInvalidPassword    = errs.Errorf(errs.EINVALID, "user: invalid password")
	ErrUserNotFound       = errs.Errorf(errs.ENOTFOUND, "user: user not found")
	ErrEmailAlreadyExists = errs.Errorf(errs.ECONFLICT, "user: email already exists")
)

type User struct {
	ID           int64
	Name         string
	Email        string
	Password     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.Password) == "" {
		return ErrInvalidPassword
	}
	return nil
}
