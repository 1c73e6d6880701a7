package store

import (
	"errors"
	"fmt"
)

// ErrNotFound 目标记录不存在
var ErrNotFound = errors.New("记录不存在")

// ValidationError 必填字段缺失或为空
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "不能为空"}
}
