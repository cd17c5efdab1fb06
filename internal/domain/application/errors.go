package application

import "errors"

var (
	ErrNotFound        = errors.New("application not found")
	ErrNotApplicant    = errors.New("not the application owner")
	ErrAlreadyReviewed = errors.New("application already reviewed")
	ErrAlreadyPending  = errors.New("applicant already has a pending application")
	ErrInvalidStatus   = errors.New("invalid application status")
)
