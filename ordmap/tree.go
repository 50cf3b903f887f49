// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ordmap

// tree is the binary search tree engine behind a Map.
//
// It must at all times maintain the invariants that
//   - head is the left child of the minimum node, and head.parent is that node
//   - tail is the right child of the maximum node, and tail.parent is that node
//   - head.parent == tail and tail.parent == head iff the tree is empty,
//     in which case root == none
type tree[K, V any] struct {
	nodes *arena[K, V]
	root  handle
	head  handle
	tail  handle
	size  int
	less  Less[K]
}

// newTree creates an empty tree ordered by less.
func newTree[K, V any](less Less[K], limit int) *tree[K, V] {
	if less == nil {
		panic("nil comparator")
	}
	t := &tree[K, V]{
		nodes: newArena[K, V](limit),
		root:  none,
		less:  less,
	}
	t.head = t.nodes.newSentinel()
	t.tail = t.nodes.newSentinel()
	t.nodes.at(t.head).parent = t.tail
	t.nodes.at(t.tail).parent = t.head
	return t
}

// begin returns the minimum node, or tail if the tree is empty.
func (t *tree[K, V]) begin() handle {
	return t.nodes.at(t.head).parent
}

// last returns the maximum node, or head if the tree is empty.
func (t *tree[K, V]) last() handle {
	return t.nodes.at(t.tail).parent
}

// isPayload reports whether h refers to an element of the tree.
func (t *tree[K, V]) isPayload(h handle) bool {
	return h != none && !t.nodes.isSentinel(h)
}

// key returns the key stored in h.
func (t *tree[K, V]) key(h handle) K {
	return t.nodes.at(h).key
}

// find returns the node holding key, or tail if there is no such node.
func (t *tree[K, V]) find(key K) handle {
	for h := t.root; t.isPayload(h); {
		switch k := t.key(h); {
		case t.less(key, k):
			h = t.nodes.link(h, left)
		case t.less(k, key):
			h = t.nodes.link(h, right)
		default:
			return h
		}
	}
	return t.tail
}

// ceil returns the first node whose key is greater than key, or tail if there
// is no such node.
func (t *tree[K, V]) ceil(key K) handle {
	out := t.tail
	for h := t.root; t.isPayload(h); {
		if t.less(key, t.key(h)) {
			out = h
			h = t.nodes.link(h, left)
		} else {
			h = t.nodes.link(h, right)
		}
	}
	return out
}

// lowerBound returns the first node whose key is greater than or equal to key.
func (t *tree[K, V]) lowerBound(key K) handle {
	if h := t.find(key); h != t.tail {
		return h
	}
	return t.ceil(key)
}

// upperBound returns the first node whose key is greater than key.
func (t *tree[K, V]) upperBound(key K) handle {
	if h := t.find(key); h != t.tail {
		return t.nodes.next(h)
	}
	return t.ceil(key)
}

// equalRange returns the pair (next(lowerBound(key)), upperBound(key)).  The
// lower bound is always stepped over unless it is tail, so for an absent key
// first lies one element past last.
func (t *tree[K, V]) equalRange(key K) (first, last handle) {
	first, last = t.lowerBound(key), t.upperBound(key)
	if first != t.tail {
		first = t.nodes.next(first)
	}
	return
}

// insert adds key with value unless an equal key already exists, in which case
// the existing node is returned with ok set to false.  On allocation failure
// the tree is left exactly as it was.
func (t *tree[K, V]) insert(key K, value V) (h handle, ok bool, err error) {
	if h = t.find(key); h != t.tail {
		return h, false, nil
	}
	if h, err = t.nodes.newNode(key, value, t.size); err != nil {
		return t.tail, false, err
	}

	empty := t.size == 0
	isMax := empty || t.less(t.key(t.last()), key)
	isMin := empty || t.less(key, t.key(t.begin()))

	parent, s := none, left
	for cur := t.root; t.isPayload(cur); {
		parent = cur
		if t.less(t.key(cur), key) {
			s = right
		} else {
			s = left
		}
		cur = t.nodes.link(cur, s)
	}
	if parent == none {
		t.root = h
	} else {
		t.nodes.setChild(parent, s, h)
	}

	if isMax {
		t.nodes.setChild(h, right, t.tail)
	}
	if isMin {
		t.nodes.setChild(h, left, t.head)
	}
	t.size++
	return h, true, nil
}

// rethread hangs the given sentinel off the s-side slot of target.  If target
// is the opposite sentinel, the tree became empty and the two sentinels are
// linked to each other instead.
func (t *tree[K, V]) rethread(target handle, s side, sentinel handle) {
	if t.nodes.isSentinel(target) {
		t.nodes.at(sentinel).parent = target
		return
	}
	t.nodes.setChild(target, s, sentinel)
}

// erase removes the node h from the tree and releases it.
func (t *tree[K, V]) erase(h handle) {
	n := t.nodes.at(h)

	// Move the sentinels off the node before it is spliced out.  Both
	// neighbors are looked up before either link of n is cleared.
	lowest, highest := none, none
	if n.child[left] == t.head {
		lowest = t.nodes.next(h)
		t.rethread(lowest, left, t.head)
	}
	if n.child[right] == t.tail {
		highest = t.nodes.prev(h)
		t.rethread(highest, right, t.tail)
	}
	if lowest != none {
		n.child[left] = none
	}
	if highest != none {
		n.child[right] = none
	}

	// Pick the node that takes the place of n.
	replacement := none
	switch l, r := n.child[left], n.child[right]; {
	case l != none && r != none:
		replacement = t.nodes.extreme(l, right)
		if replacement != l {
			rn := t.nodes.at(replacement)
			t.nodes.setChild(rn.parent, right, rn.child[left])
			rn.child[left] = none
		}
	case r != none:
		replacement = r
	case l != none:
		replacement = l
	}

	// The slot in n that still refers to the replacement, if any.
	var (
		promoter side
		promoted bool
	)
	if replacement != none && t.nodes.at(replacement).parent == h {
		promoter, promoted = t.nodes.sideOf(replacement)
	}

	if n.parent == none {
		t.root = replacement
	} else if s, ok := t.nodes.sideOf(h); ok {
		t.nodes.at(n.parent).child[s] = replacement
	}

	if replacement != none {
		if promoted {
			n.child[promoter] = none
		}
		rn := t.nodes.at(replacement)
		for _, s := range [...]side{left, right} {
			if rn.child[s] == none {
				t.nodes.setChild(replacement, s, n.child[s])
			}
		}
		rn.parent = n.parent
	}

	t.nodes.freeNode(h)
	t.size--
}

// clear removes all nodes, one at a time.
func (t *tree[K, V]) clear() {
	for h := t.begin(); h != t.tail; {
		next := t.nodes.next(h)
		t.erase(h)
		h = next
	}
}
