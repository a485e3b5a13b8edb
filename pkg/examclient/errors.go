package examclient

import (
	"errors"
	"fmt"
)

// ValidationError 本地校验失败，所有违规字段的提示拼成一条消息，不发请求
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RemoteError 非 2xx 响应或传输失败
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

var (
	// ErrRecordNotFound 集合里没有这条记录
	ErrRecordNotFound = errors.New("expression not found")

	// ErrReconciliation 创建请求成功但响应里没有以本地 ID 开头的记录，
	// 本地 ID 保持不变，记录仍视为未持久化
	ErrReconciliation = errors.New("server response did not contain the saved expression")
)
