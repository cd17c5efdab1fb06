package category

import "errors"

var (
	ErrNotFound      = errors.New("category not found")
	ErrNameTaken     = errors.New("category name already exists")
	ErrHasServices   = errors.New("category still has services")
	ErrAlreadyActive = errors.New("category already in requested state")
)
