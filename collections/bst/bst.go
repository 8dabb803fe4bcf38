// Package bst 提供允许重复键的二叉搜索树有序 Map.
//
// 不做任何平衡，最坏情况下高度退化为 O(n). 所有操作均为迭代实现，
// 退化树也不会受调用栈深度限制.
//
// Tree 不是并发安全的，一棵树在同一时刻只能被一个 goroutine 使用.
package bst

import (
	"cmp"
	"fmt"
)

// Entry 键值对.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// node 树节点.
//
// 子节点由父节点的 left/right 槽位持有；parent 只用于向上导航，
// 必须满足 parent.left == n 或 parent.right == n.
type node[K any, V any] struct {
	key    K
	value  V
	left   *node[K, V]
	right  *node[K, V]
	parent *node[K, V]
}

// Tree 允许重复键的二叉搜索树.
//
// 排序性质: 左子树的键 < 节点键 <= 右子树的键.
// 相同的键总是插入到右侧，因此重复键按插入顺序形成向右的链.
// 零值不可用，请通过 New 或 NewOrdered 创建.
//
// 示例:
//
//	t := bst.NewOrdered[string, float64]()
//	t.Insert("Ricardo", 2.5)
//	t.Insert("Ellen", 3.5)
//	v, err := t.Search("Ellen") // 3.5, nil
//	t.Height()                  // 1
type Tree[K any, V any] struct {
	root *node[K, V]
	cmp  Comparator[K]
	size int
}

// New 创建 Tree，需要提供比较器.
func New[K any, V any](c Comparator[K]) *Tree[K, V] {
	if c == nil {
		panic("bst: nil comparator")
	}
	return &Tree[K, V]{cmp: c}
}

// NewOrdered 创建 Tree，使用 cmp.Compare 比较内置有序类型.
func NewOrdered[K cmp.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{cmp: OrderedCompare[K]}
}

// FromEntries 按给定顺序插入 entries 创建 Tree.
func FromEntries[K cmp.Ordered, V any](entries ...Entry[K, V]) *Tree[K, V] {
	t := NewOrdered[K, V]()
	t.InsertAll(entries...)
	return t
}

// Search 返回沿查找路径遇到的第一个匹配节点的值.
// 键不存在时返回包装了 ErrNotFound 的错误.
func (t *Tree[K, V]) Search(key K) (V, error) {
	n := t.find(key)
	if n == nil {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return n.value, nil
}

// Get 获取键对应的值.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	n := t.find(key)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

// GetOrDefault 获取键对应的值，不存在则返回默认值.
func (t *Tree[K, V]) GetOrDefault(key K, defaultVal V) V {
	if v, ok := t.Get(key); ok {
		return v
	}
	return defaultVal
}

// Contains 判断键是否存在.
func (t *Tree[K, V]) Contains(key K) bool {
	return t.find(key) != nil
}

// Count 返回键为 key 的节点个数.
//
// 所有等于 key 的节点都位于第一个匹配节点的右子树中，且落在同一条下降路径上.
func (t *Tree[K, V]) Count(key K) int {
	first := t.find(key)
	if first == nil {
		return 0
	}

	count := 1
	for n := first.right; n != nil; {
		if t.cmp(key, n.key) < 0 {
			n = n.left
			continue
		}
		if t.cmp(key, n.key) == 0 {
			count++
		}
		n = n.right
	}
	return count
}

// Insert 插入新的叶子节点，不检查键是否重复.
func (t *Tree[K, V]) Insert(key K, value V) {
	leaf := &node[K, V]{key: key, value: value}
	t.size++

	if t.root == nil {
		t.root = leaf
		return
	}

	current := t.root
	for {
		if t.cmp(key, current.key) < 0 {
			if current.left == nil {
				current.left = leaf
				leaf.parent = current
				return
			}
			current = current.left
		} else {
			// 相等的键继续向右
			if current.right == nil {
				current.right = leaf
				leaf.parent = current
				return
			}
			current = current.right
		}
	}
}

// InsertAll 按顺序插入多个键值对.
func (t *Tree[K, V]) InsertAll(entries ...Entry[K, V]) {
	for _, e := range entries {
		t.Insert(e.Key, e.Value)
	}
}

// Len 返回节点数量.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// IsEmpty 判断是否为空.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.root == nil
}

// Comparator 返回比较器.
func (t *Tree[K, V]) Comparator() Comparator[K] {
	return t.cmp
}

// find 沿比较路径查找第一个匹配节点.
func (t *Tree[K, V]) find(key K) *node[K, V] {
	current := t.root
	for current != nil {
		c := t.cmp(key, current.key)
		switch {
		case c == 0:
			return current
		case c < 0:
			current = current.left
		default:
			current = current.right
		}
	}
	return nil
}

// minimum 返回子树中最左的节点.
func minimum[K any, V any](n *node[K, V]) *node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// maximum 返回子树中最右的节点.
func maximum[K any, V any](n *node[K, V]) *node[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}
