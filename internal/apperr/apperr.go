// Package apperr 定义推荐流程的错误分类，供各层统一判定与映射 HTTP 状态码。
package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind int

const (
	// KindUnknown 未分类错误，上层一律按 500 处理
	KindUnknown Kind = iota
	// KindInvalidQuery 用户查询或模型输出无法解析为可用结果
	KindInvalidQuery
	// KindRateLimited 上游限流
	KindRateLimited
	// KindExternalAPI 外部服务调用失败（网络、非 2xx、响应结构异常）
	KindExternalAPI
	// KindNotFound 所有尝试均未得到可用结果
	KindNotFound
)

// Error 带类别的应用错误
type Error struct {
	Kind    Kind
	Service string // 仅 KindExternalAPI 使用，标记出错的上游
	Message string
}

func (e *Error) Error() string {
	if e.Kind == KindExternalAPI && e.Service != "" {
		return fmt.Sprintf("external api error (%s): %s", e.Service, e.Message)
	}
	return e.Message
}

// InvalidQuery 查询无效
func InvalidQuery(message string) *Error {
	return &Error{Kind: KindInvalidQuery, Message: message}
}

// RateLimited 上游限流
func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Message: message}
}

// External 外部服务错误
func External(service, message string) *Error {
	return &Error{Kind: KindExternalAPI, Service: service, Message: message}
}

// NotFound 无可用结果
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf 返回错误的类别，非 *Error 一律视为 KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind 判断错误是否属于指定类别
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
