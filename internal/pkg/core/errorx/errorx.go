// Package errorx 业务错误定义
//
// 错误只携带稳定的错误类别（Kind）与建议状态码，不携带展示文案，
// 文案由接入层按错误类别映射（支持多语言）。
package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code int    // 建议的 HTTP 状态码
	Kind string // 稳定的错误类别标识
	err  error  // 底层错误（可选）
}

func New(code int, kind string) *Error {
	return &Error{Code: code, Kind: kind}
}

// Wrap 以指定类别包装底层错误，错误类别匹配仍通过 errors.Is 生效
func Wrap(kind *Error, err error) *Error {
	return &Error{Code: kind.Code, Kind: kind.Kind, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.err.Error())
	}

	return e.Kind
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is 同类别视为同一错误
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}

	return false
}

// KindOf 提取错误类别，非业务错误返回空字符串
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}

// CodeOf 提取建议状态码，非业务错误按服务器内部错误处理
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return 500
}
