package provider

import "errors"

var (
	ErrNotFound      = errors.New("provider not found")
	ErrNotOwner      = errors.New("not the provider owner")
	ErrInvalidStatus = errors.New("invalid provider status")
)
