package bst

import (
	"errors"
	"fmt"
)

// 预定义错误.
var (
	// ErrNotFound 键不存在，仅由 Search 返回.
	ErrNotFound = errors.New("键不存在")

	// ErrIntegrity 树结构被破坏.
	ErrIntegrity = errors.New("树结构完整性被破坏")
)

// IntegrityError 结构完整性错误.
//
// 出现即说明存在程序缺陷: replaceChild 以 panic 抛出，Validate 以 error 返回.
type IntegrityError struct {
	Op     string
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("bst integrity violation [%s]: %s", e.Op, e.Detail)
}

// Unwrap 使 errors.Is(err, ErrIntegrity) 成立.
func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}
