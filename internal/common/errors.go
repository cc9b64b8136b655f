package common

import (
	"errors"
	"fmt"
)

// AppError 应用级错误结构
// Message 是可以直接展示给用户的文本
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code, message string, err error) error {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewError 创建新错误
func NewError(code, message string) error {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// CodeOf 取出错误链上第一个 AppError 的错误码，没有则返回空串
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// MessageOf 返回面向用户的错误文本
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// 错误码常量
const (
	ErrCodeUserFetch    = "USER_FETCH_FAILED"
	ErrCodeRepoFetch    = "REPO_FETCH_FAILED"
	ErrCodeNoRepos      = "NO_REPOSITORIES"
	ErrCodeAIProcessing = "AI_PROCESSING_ERROR"
	ErrCodeNotification = "NOTIFICATION_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// 面向用户的错误文本
const (
	MsgUserFetchFailed = "Failed to fetch user data. Please check the username."
	MsgRepoFetchFailed = "Failed to fetch repositories."
	MsgNoRepositories  = "No public repositories found."
	MsgInvalidURL      = "Invalid GitHub URL. Please provide a valid GitHub profile URL."
	MsgAnalysisAborted = "Analysis was interrupted before it finished."
)
