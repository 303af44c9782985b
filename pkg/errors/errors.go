package errors

import "errors"

// Kind 业务错误分类，Handler 层据此映射 HTTP 状态码与业务码
type Kind string

const (
	KindInvalidArgument   Kind = "invalid_argument"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidState      Kind = "invalid_state"
	KindAuditWriteFailure Kind = "audit_write_failure"
	KindInternal          Kind = "internal"
)

// Error 带分类的业务错误
// 同一个 *Error 实例即一个哨兵，调用方通过 errors.Is 比较
type Error struct {
	Kind    Kind
	Message string
}

// New 创建业务错误哨兵
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string { return e.Message }

// KindOf 提取错误链中的业务分类，非业务错误返回 KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf 提取错误链中的业务提示信息
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = New(KindConflict, "数据已被其他操作修改，请刷新后重试")

// ErrInvalidID 标识符格式无效（非 UUID）
var ErrInvalidID = New(KindInvalidState, "标识符格式无效")
