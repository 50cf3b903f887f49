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

import (
	"errors"
	"math"
)

// ErrExhausted is returned when the node arena has reached its capacity limit.
var ErrExhausted = errors.New("ordmap: node arena exhausted")

const (
	// pageShift determines the number of nodes held by a single arena page.
	pageShift = 8
	pageSize  = 1 << pageShift
	pageMask  = pageSize - 1

	// DefaultMaxSize is the maximum number of elements a map can hold when
	// no limit is given.  Two handles are reserved for the sentinels.
	DefaultMaxSize = math.MaxInt32 - 2
)

// handle identifies a node within an arena.
type handle int32

// none represents an absent link.
const none handle = -1

// side selects one of the two child links of a node.
type side uint8

const (
	left side = iota
	right
)

// opposite returns the other side.
func (s side) opposite() side {
	return s ^ 1
}

// kind tells sentinels apart from payload-bearing nodes.
type kind uint8

const (
	free kind = iota
	payload
	sentinel
)

// node is a single vertex of the tree.  Links are handles into the arena that
// owns the node, so a node never refers to storage of another map.
type node[K, V any] struct {
	parent handle
	child  [2]handle
	kind   kind
	key    K
	value  V
}

// arena owns the node storage of a single map.  Nodes live in fixed-size
// pages, so the address of a node (and thus of its value) never changes while
// the node is in use.  Released handles are kept in a free list and reused
// before the arena grows.
type arena[K, V any] struct {
	pages    [][]node[K, V]
	used     int
	freelist []handle
	limit    int
}

// newArena creates a new arena that holds at most limit payload nodes.
func newArena[K, V any](limit int) *arena[K, V] {
	if limit <= 0 || DefaultMaxSize < limit {
		limit = DefaultMaxSize
	}
	return &arena[K, V]{limit: limit}
}

// at returns the node identified by the given handle.
func (a *arena[K, V]) at(h handle) *node[K, V] {
	return &a.pages[h>>pageShift][h&pageMask]
}

// grab takes a handle from the free list or the end of the last page.
func (a *arena[K, V]) grab() handle {
	if index := len(a.freelist) - 1; 0 <= index {
		h := a.freelist[index]
		a.freelist = a.freelist[:index]
		return h
	}
	if a.used == len(a.pages)*pageSize {
		a.pages = append(a.pages, make([]node[K, V], pageSize))
	}
	h := handle(a.used)
	a.used++
	return h
}

// newSentinel allocates a sentinel node.  Sentinels do not count against the
// capacity limit.
func (a *arena[K, V]) newSentinel() handle {
	h := a.grab()
	*a.at(h) = node[K, V]{parent: none, child: [2]handle{none, none}, kind: sentinel}
	return h
}

// newNode allocates a payload node holding the given key and value.  This
// returns ErrExhausted without touching any existing node if the arena is
// full.
func (a *arena[K, V]) newNode(key K, value V, size int) (handle, error) {
	if a.limit <= size {
		return none, ErrExhausted
	}
	h := a.grab()
	*a.at(h) = node[K, V]{parent: none, child: [2]handle{none, none}, kind: payload, key: key, value: value}
	return h, nil
}

// freeNode returns the node to the free list, dropping its payload so that
// the garbage collector can reclaim whatever the key and value refer to.
func (a *arena[K, V]) freeNode(h handle) {
	*a.at(h) = node[K, V]{parent: none, child: [2]handle{none, none}, kind: free}
	a.freelist = append(a.freelist, h)
}

// isSentinel reports whether h refers to a sentinel node.
func (a *arena[K, V]) isSentinel(h handle) bool {
	return a.at(h).kind == sentinel
}

// link returns the child of h on the given side.
func (a *arena[K, V]) link(h handle, s side) handle {
	return a.at(h).child[s]
}

// setChild makes child the s-side child of parent and points the back link of
// child at parent.  child may be none.
func (a *arena[K, V]) setChild(parent handle, s side, child handle) {
	a.at(parent).child[s] = child
	if child != none {
		a.at(child).parent = parent
	}
}

// sideOf reports which child link of its parent currently refers to h.  ok is
// false if h has no parent or neither link of the parent refers to h.
func (a *arena[K, V]) sideOf(h handle) (s side, ok bool) {
	p := a.at(h).parent
	if p == none {
		return
	}
	switch h {
	case a.at(p).child[left]:
		return left, true
	case a.at(p).child[right]:
		return right, true
	}
	return
}

// extreme walks from h towards s until there is no further child on that
// side, returning the last node visited.
func (a *arena[K, V]) extreme(h handle, s side) handle {
	for c := a.link(h, s); c != none; c = a.link(h, s) {
		h = c
	}
	return h
}

// step moves from h to its in-order neighbor towards s: next for right,
// prev for left.  Stepping off the far sentinel is a contract violation.
func (a *arena[K, V]) step(h handle, s side) handle {
	if c := a.link(h, s); c != none {
		return a.extreme(c, s.opposite())
	}
	for {
		p := a.at(h).parent
		if p == none {
			return none
		}
		if a.isSentinel(p) || a.link(p, s.opposite()) == h {
			return p
		}
		h = p
	}
}

// next returns the in-order successor of h.
func (a *arena[K, V]) next(h handle) handle {
	return a.step(h, right)
}

// prev returns the in-order predecessor of h.
func (a *arena[K, V]) prev(h handle) handle {
	return a.step(h, left)
}
