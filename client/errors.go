package client

import (
	"errors"
	"fmt"
)

// ErrNotFound 服务端返回 404
var ErrNotFound = errors.New("记录不存在")

// ValidationError 服务端拒绝请求参数（400）
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "参数错误: " + e.Message
}

// TransientNetworkError 网络请求失败，调用方可稍后重试
type TransientNetworkError struct {
	Op  string
	Err error
}

func (e *TransientNetworkError) Error() string {
	return fmt.Sprintf("%s 请求失败: %v", e.Op, e.Err)
}

func (e *TransientNetworkError) Unwrap() error {
	return e.Err
}

// ServerError 服务端内部错误或其他非预期状态码
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("服务端错误 (%d): %s", e.Status, e.Message)
}
