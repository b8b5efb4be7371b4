package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound 操作的目标 id 不存在。
// 通过 notFound 包装成「清单不存在」「订单不存在」这类完整提示语。
var ErrNotFound = errors.New("不存在")

// ValidationError 用户可纠正的输入错误：必填为空、重名、枚举非法。
// Reason 直接作为接口返回的提示语。
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func notFound(what string) error {
	return fmt.Errorf("%s%w", what, ErrNotFound)
}
