package catalog

import "errors"

var (
	ErrNotFound        = errors.New("service not found")
	ErrNotOwner        = errors.New("not the service owner")
	ErrCategoryInvalid = errors.New("category does not exist or is inactive")
	ErrProviderInvalid = errors.New("provider does not exist or is not active")
	ErrHasAppointments = errors.New("service has appointments")
)
