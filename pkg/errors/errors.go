// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeUnauthorized       ErrorCode = "1002"
	CodeForbidden          ErrorCode = "1003"
	CodeNotFound           ErrorCode = "1004"
	CodeConflict           ErrorCode = "1005"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"

	// 认证授权错误 (2xxx)
	CodeTokenExpired     ErrorCode = "2001"
	CodeTokenInvalid     ErrorCode = "2002"
	CodeTokenMissing     ErrorCode = "2003"
	CodePermissionDenied ErrorCode = "2004"

	// 资源错误 (3xxx)
	CodeSaveNotFound   ErrorCode = "3001"
	CodeScriptNotFound ErrorCode = "3002"
	CodeBadgeNotFound  ErrorCode = "3003"
	CodeChainNotFound  ErrorCode = "3004"
	CodeNodeNotFound   ErrorCode = "3005"

	// 业务错误 (4xxx)
	CodeValidationFailed ErrorCode = "4001"
	CodeInvalidOption    ErrorCode = "4002"
	CodeScriptLocked     ErrorCode = "4003"
	CodeScriptCompleted  ErrorCode = "4004"
	CodeSaveConflict     ErrorCode = "4005"
	CodeChainNoEntry     ErrorCode = "4006"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeInvalidOption:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeTokenExpired, CodeTokenInvalid, CodeTokenMissing:
		return http.StatusUnauthorized
	case CodeForbidden, CodePermissionDenied, CodeScriptLocked:
		return http.StatusForbidden
	case CodeNotFound, CodeSaveNotFound, CodeScriptNotFound, CodeBadgeNotFound, CodeChainNotFound, CodeNodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeScriptCompleted, CodeSaveConflict:
		return http.StatusConflict
	case CodeValidationFailed, CodeChainNoEntry:
		return http.StatusUnprocessableEntity
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam    = New(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized    = New(CodeUnauthorized, "unauthorized")
	ErrForbidden       = New(CodeForbidden, "forbidden")
	ErrNotFound        = New(CodeNotFound, "resource not found")
	ErrConflict        = New(CodeConflict, "resource conflict")
	ErrTooManyRequests = New(CodeTooManyRequests, "too many requests")
	ErrInternalError   = New(CodeInternalError, "internal server error")

	ErrTokenExpired = New(CodeTokenExpired, "token expired")
	ErrTokenInvalid = New(CodeTokenInvalid, "token invalid")
	ErrTokenMissing = New(CodeTokenMissing, "token missing")

	ErrSaveNotFound   = New(CodeSaveNotFound, "save not found")
	ErrScriptNotFound = New(CodeScriptNotFound, "script not found")
	ErrBadgeNotFound  = New(CodeBadgeNotFound, "badge not found")
	ErrChainNotFound  = New(CodeChainNotFound, "workshop chain not found")
	ErrNodeNotFound   = New(CodeNodeNotFound, "workshop script not found")

	ErrValidationFailed = New(CodeValidationFailed, "validation failed")
	ErrInvalidOption    = New(CodeInvalidOption, "option not found on script")
	ErrScriptLocked     = New(CodeScriptLocked, "script is locked")
	ErrScriptCompleted  = New(CodeScriptCompleted, "script already completed")
	ErrSaveConflict     = New(CodeSaveConflict, "save was modified concurrently")
	ErrChainNoEntry     = New(CodeChainNoEntry, "chain has no entry script")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
