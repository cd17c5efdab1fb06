package notification

import "errors"

var (
	ErrNotFound = errors.New("notification not found")
	ErrNotOwner = errors.New("not the notification owner")
)
