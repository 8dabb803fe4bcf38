package gradebook

import "errors"

// 预定义错误常量.
var (
	// ErrStudentNotFound 成绩册中没有该学生.
	ErrStudentNotFound = errors.New("学生不存在")

	// ErrUnexpected 演示流程得到了与预期不符的结果.
	ErrUnexpected = errors.New("结果与预期不符")
)
