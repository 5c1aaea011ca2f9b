package service

import "errors"

var (
	ErrNotFound           = errors.New("complaint not found")
	ErrValidation         = errors.New("validation error")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrEmailTaken         = errors.New("an account with this login already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)
