package user

import "errors"

var (
	ErrNotFound          = errors.New("user not found")
	ErrEmailAlreadyUsed  = errors.New("email already in use")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrInvalidRole       = errors.New("invalid role")
	ErrCannotDeleteAdmin = errors.New("cannot delete an admin account")
)
