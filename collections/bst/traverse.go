package bst

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// All 返回按键升序的惰性序列.
// 序列可以重复遍历，在树未被修改时每次产生相同的结果.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var stack []*node[K, V]
		n := t.root
		for n != nil || len(stack) > 0 {
			for n != nil {
				stack = append(stack, n)
				n = n.left
			}
			n = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(n.key, n.value) {
				return
			}
			n = n.right
		}
	}
}

// Range 按顺序遍历所有键值对.
// fn 返回 false 时停止遍历.
func (t *Tree[K, V]) Range(fn func(key K, value V) bool) {
	for k, v := range t.All() {
		if !fn(k, v) {
			return
		}
	}
}

// Keys 返回所有键（按排序顺序）.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	for k := range t.All() {
		keys = append(keys, k)
	}
	return keys
}

// Values 返回所有值（按键排序顺序）.
func (t *Tree[K, V]) Values() []V {
	values := make([]V, 0, t.size)
	for _, v := range t.All() {
		values = append(values, v)
	}
	return values
}

// Entries 返回所有键值对（按键排序顺序）.
func (t *Tree[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, t.size)
	for k, v := range t.All() {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}
	return entries
}

// Min 返回最小键的键值对.
func (t *Tree[K, V]) Min() (Entry[K, V], bool) {
	if t.root == nil {
		return Entry[K, V]{}, false
	}
	n := minimum(t.root)
	return Entry[K, V]{Key: n.key, Value: n.value}, true
}

// Max 返回最大键的键值对.
// 存在重复键时返回最后插入的那个.
func (t *Tree[K, V]) Max() (Entry[K, V], bool) {
	if t.root == nil {
		return Entry[K, V]{}, false
	}
	n := maximum(t.root)
	return Entry[K, V]{Key: n.key, Value: n.value}, true
}

// Height 返回树的高度，即根到最深叶子的边数. 空树为 -1.
func (t *Tree[K, V]) Height() int {
	height := -1
	level := []*node[K, V]{}
	if t.root != nil {
		level = append(level, t.root)
	}

	for len(level) > 0 {
		height++
		next := make([]*node[K, V], 0, 2*len(level))
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}
	return height
}

// PrintInorder 按键升序向 w 写出每个键值对，每行一个:
//
//	Key: "Chen", Value: "2.5"
func (t *Tree[K, V]) PrintInorder(w io.Writer) error {
	for k, v := range t.All() {
		if _, err := fmt.Fprintf(w, "Key: \"%v\", Value: \"%v\"\n", k, v); err != nil {
			return err
		}
	}
	return nil
}

// String 返回与 PrintInorder 相同的文本.
func (t *Tree[K, V]) String() string {
	var sb strings.Builder
	_ = t.PrintInorder(&sb)
	return sb.String()
}
