// internal/service/coupon/domain/errors.go
package domain

import "github.com/pkg/errors"

// 领域层的哨兵错误，interfaces 层通过 errors.Is 映射为 HTTP 状态码
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("duplicate")
	ErrForbidden       = errors.New("operation not allowed")
)
