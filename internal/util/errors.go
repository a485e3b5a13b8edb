package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrExamNotFound       = errors.New("exam not found")
	ErrExpressionNotFound = errors.New("expression not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrFieldsRequired     = errors.New("Fields required")
	ErrValidation         = errors.New("validation failed")
)
