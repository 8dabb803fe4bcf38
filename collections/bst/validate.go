package bst

import "fmt"

// Validate 检查排序性质、parent 引用以及节点计数.
// 返回描述第一处破坏的 *IntegrityError，结构完好时返回 nil.
func (t *Tree[K, V]) Validate() error {
	if t.root != nil && t.root.parent != nil {
		return &IntegrityError{Op: "validate", Detail: "root has a parent"}
	}

	// lo 为闭区间下界（来自向右的祖先），hi 为开区间上界（来自向左的祖先）
	type frame struct {
		n      *node[K, V]
		lo, hi *node[K, V]
	}

	count := 0
	stack := []frame{}
	if t.root != nil {
		stack = append(stack, frame{n: t.root})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++

		if f.lo != nil && t.cmp(f.n.key, f.lo.key) < 0 {
			return &IntegrityError{
				Op:     "validate",
				Detail: fmt.Sprintf("key %v is smaller than ancestor %v on its left", f.n.key, f.lo.key),
			}
		}
		if f.hi != nil && t.cmp(f.n.key, f.hi.key) >= 0 {
			return &IntegrityError{
				Op:     "validate",
				Detail: fmt.Sprintf("key %v is not smaller than ancestor %v on its right", f.n.key, f.hi.key),
			}
		}

		if l := f.n.left; l != nil {
			if l.parent != f.n {
				return &IntegrityError{Op: "validate", Detail: fmt.Sprintf("left child of %v has a stale parent", f.n.key)}
			}
			stack = append(stack, frame{n: l, lo: f.lo, hi: f.n})
		}
		if r := f.n.right; r != nil {
			if r.parent != f.n {
				return &IntegrityError{Op: "validate", Detail: fmt.Sprintf("right child of %v has a stale parent", f.n.key)}
			}
			stack = append(stack, frame{n: r, lo: f.n, hi: f.hi})
		}
	}

	if count != t.size {
		return &IntegrityError{Op: "validate", Detail: fmt.Sprintf("counted %d nodes, size is %d", count, t.size)}
	}
	return nil
}
