package bst

import (
	"cmp"
	"strings"
	"time"
)

// Comparator 比较函数.
// 返回值: 负数(a<b), 0(a==b), 正数(a>b).
type Comparator[K any] func(a, b K) int

// OrderedCompare 用于 cmp.Ordered 类型的比较器.
func OrderedCompare[T cmp.Ordered](a, b T) int {
	return cmp.Compare(a, b)
}

// ReverseCompare 用于 cmp.Ordered 类型的逆序比较器.
func ReverseCompare[T cmp.Ordered](a, b T) int {
	return cmp.Compare(b, a)
}

// FoldCompare 忽略大小写的字符串比较器.
func FoldCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// TimeCompare 时间比较器.
func TimeCompare(a, b time.Time) int {
	return a.Compare(b)
}

// Reverse 返回逆序比较器.
func Reverse[K any](c Comparator[K]) Comparator[K] {
	return func(a, b K) int {
		return c(b, a)
	}
}
