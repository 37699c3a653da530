package domain

import "errors"

var (
	ErrDonorNotFound = errors.New("donor not found")
	ErrInvalidDonor  = errors.New("invalid donor")
)
