package client

import "go.uber.org/zap"

// Notifier 向用户展示一次性提示
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

// LogNotifier 将提示写入日志
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Success(msg string) {
	n.Log.Info(msg)
}

func (n LogNotifier) Error(msg string, err error) {
	n.Log.Warn(msg, zap.Error(err))
}
