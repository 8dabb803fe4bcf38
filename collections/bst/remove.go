package bst

// Remove 删除沿查找路径遇到的第一个匹配节点.
// 键不存在时什么也不做.
//
// 被删除节点有两个子节点时，会把后继的键值复制到该节点再删除后继节点，
// 因此节点对象与键值的对应关系不会被保留.
func (t *Tree[K, V]) Remove(key K) {
	t.Delete(key)
}

// Delete 与 Remove 相同，额外返回被删除的值以及是否发生了删除.
func (t *Tree[K, V]) Delete(key K) (V, bool) {
	n := t.find(key)
	if n == nil {
		var zero V
		return zero, false
	}

	value := n.value
	t.removeNode(n)
	return value, true
}

// removeNode 从树中摘除 n.
func (t *Tree[K, V]) removeNode(n *node[K, V]) {
	// 两个子节点: 用后继覆盖，再删除后继（后继没有左子节点）
	if n.left != nil && n.right != nil {
		successor := minimum(n.right)
		n.key = successor.key
		n.value = successor.value
		t.removeNode(successor)
		return
	}

	switch {
	case n == t.root:
		if n.left != nil {
			t.root = n.left
		} else {
			t.root = n.right
		}
		if t.root != nil {
			t.root.parent = nil
		}
	case n.left != nil:
		replaceChild(n.parent, n, n.left)
	default:
		// 叶子或只有右子节点
		replaceChild(n.parent, n, n.right)
	}

	release(n)
	t.size--
}

// replaceChild 把 parent 中指向 current 的槽位替换为 replacement.
// current 不是 parent 的子节点时 panic.
func replaceChild[K any, V any](parent, current, replacement *node[K, V]) {
	switch {
	case parent == nil:
		panic(&IntegrityError{Op: "replaceChild", Detail: "non-root node has no parent"})
	case parent.left == current:
		parent.left = replacement
	case parent.right == current:
		parent.right = replacement
	default:
		panic(&IntegrityError{Op: "replaceChild", Detail: "node is not a child of its recorded parent"})
	}

	if replacement != nil {
		replacement.parent = parent
	}
}

// release 清空已摘除的节点，使其不再引用任何键值或节点.
func release[K any, V any](n *node[K, V]) {
	*n = node[K, V]{}
}
