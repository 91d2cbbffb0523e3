// internal/service/payment/domain/errors.go
package domain

import "github.com/pkg/errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("duplicate")
	ErrForbidden       = errors.New("forbidden")
)
