package bst

// Clone 深拷贝，返回结构完全相同且互不共享节点的新树.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	return &Tree[K, V]{
		root: copyNodes(t.root),
		cmp:  t.cmp,
		size: t.size,
	}
}

// Assign 用 src 的深拷贝替换当前树的内容.
//
// 先完整构建拷贝再一次性交换，构建过程中出现 panic 时当前树保持不变.
// src 为 nil 时等同于 Clear.
func (t *Tree[K, V]) Assign(src *Tree[K, V]) {
	if t == src {
		return
	}
	if src == nil {
		t.Clear()
		return
	}

	fresh := src.Clone()

	old := t.root
	t.root, t.cmp, t.size = fresh.root, fresh.cmp, fresh.size
	releaseAll(old)
}

// Clear 释放所有节点，树回到空状态.
func (t *Tree[K, V]) Clear() {
	releaseAll(t.root)
	t.root = nil
	t.size = 0
}

// copyNodes 按相同形状复制以 src 为根的子树，并重建 parent 引用.
func copyNodes[K any, V any](src *node[K, V]) *node[K, V] {
	if src == nil {
		return nil
	}

	type pair struct {
		from, to *node[K, V]
	}

	root := &node[K, V]{key: src.key, value: src.value}
	stack := []pair{{from: src, to: root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if l := p.from.left; l != nil {
			p.to.left = &node[K, V]{key: l.key, value: l.value, parent: p.to}
			stack = append(stack, pair{from: l, to: p.to.left})
		}
		if r := p.from.right; r != nil {
			p.to.right = &node[K, V]{key: r.key, value: r.value, parent: p.to}
			stack = append(stack, pair{from: r, to: p.to.right})
		}
	}
	return root
}

// releaseAll 后序释放以 root 为根的整棵树，返回释放的节点数.
// 借助 parent 引用回溯，不需要额外的栈.
func releaseAll[K any, V any](root *node[K, V]) int {
	released := 0
	n := root
	for n != nil {
		switch {
		case n.left != nil:
			n = n.left
		case n.right != nil:
			n = n.right
		default:
			parent := n.parent
			if n != root && parent != nil {
				if parent.left == n {
					parent.left = nil
				} else {
					parent.right = nil
				}
			} else {
				parent = nil
			}
			release(n)
			released++
			n = parent
		}
	}
	return released
}
