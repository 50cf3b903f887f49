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

// Package ordmap implements an in-memory ordered map.
//
// The map is an unbalanced binary search tree whose minimum and maximum nodes
// are threaded to two sentinel nodes.  The sentinels give constant-time access
// to both ends of the map and let iterators step over the whole map, in
// either direction, by following parent and child links only.
//
// Nodes are kept in an arena owned by the map and refer to each other through
// handles rather than pointers, so erasing never leaves a dangling link.
//
// The tree is not rebalanced; inserting keys in sorted order degrades lookups
// to linear time.
//
// A Map is not safe for concurrent use.  Callers that share a map across
// goroutines must synchronize access to it, including reads that may overlap
// with a write.
package ordmap

import "golang.org/x/exp/constraints"

// EntryIterator allows callers of {A/De}scend* to iterate in-order over
// portions of the map.  When this function returns false, iteration will stop
// and the associated {A/De}scend* function will immediately return.
type EntryIterator[K, V any] func(key K, value V) bool

type options struct {
	maxSize int
}

// Option configures the node allocation of a map.
type Option func(*options)

// WithMaxSize limits the number of elements the map can hold.  Inserting into
// a full map fails with ErrExhausted.
func WithMaxSize(n int) Option {
	return func(o *options) {
		o.maxSize = n
	}
}

// Map is an ordered map from unique keys to values.
type Map[K, V any] struct {
	t *tree[K, V]
}

// New creates a new empty map ordered by the given comparator.
func New[K, V any](less Less[K], opts ...Option) *Map[K, V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Map[K, V]{t: newTree[K, V](less, o.maxSize)}
}

// NewOrdered creates a new empty map over a built-in ordered key type.
func NewOrdered[K constraints.Ordered, V any](opts ...Option) *Map[K, V] {
	return New[K, V](Ordered[K], opts...)
}

// NewRange creates a new map holding every element in [first, last).
func NewRange[K, V any](first, last Iterator[K, V], less Less[K], opts ...Option) *Map[K, V] {
	m := New[K, V](less, opts...)
	m.InsertRange(first, last)
	return m
}

// Clone creates a new map with the same comparator and a copy of every
// element.  The elements are inserted one at a time, so the clone does not
// necessarily share the shape of the original tree.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return NewRange(m.Begin(), m.End(), m.t.less, WithMaxSize(m.MaxSize()))
}

// Assign replaces the elements of the map with those of other.
func (m *Map[K, V]) Assign(other *Map[K, V]) {
	if m == other {
		return
	}
	m.Clear()
	m.InsertRange(other.Begin(), other.End())
}

// Begin returns the iterator to the minimum element, or End if the map is
// empty.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{m.t, m.t.begin()}
}

// End returns the iterator past the maximum element.
func (m *Map[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{m.t, m.t.tail}
}

// RBegin returns the reverse iterator to the maximum element, or REnd if the
// map is empty.
func (m *Map[K, V]) RBegin() ReverseIterator[K, V] {
	return Reverse(Iterator[K, V]{m.t, m.t.last()})
}

// REnd returns the reverse iterator before the minimum element.
func (m *Map[K, V]) REnd() ReverseIterator[K, V] {
	return Reverse(Iterator[K, V]{m.t, m.t.head})
}

// Empty reports whether the map holds no elements.
func (m *Map[K, V]) Empty() bool {
	return m.t.size == 0
}

// Len returns the number of elements currently in the map.
func (m *Map[K, V]) Len() int {
	return m.t.size
}

// MaxSize returns the maximum number of elements the map can hold.
func (m *Map[K, V]) MaxSize() int {
	return m.t.nodes.limit
}

// Ref returns a pointer to the value mapped to key, inserting the zero value
// first if key is absent.  Ref panics with ErrExhausted if the map is full.
func (m *Map[K, V]) Ref(key K) *V {
	it := m.Find(key)
	if it.IsEnd() {
		var zero V
		it, _ = m.Insert(key, zero)
	}
	return it.Pointer()
}

// Get looks for the value mapped to key.
func (m *Map[K, V]) Get(key K) (_ V, _ bool) {
	if h := m.t.find(key); h != m.t.tail {
		return m.t.nodes.at(h).value, true
	}
	return
}

// TryInsert adds the given entry unless an equivalent key is already in the
// map.  It returns the iterator to the element with the key and whether the
// entry was inserted.  If the map is full, it returns ErrExhausted and leaves
// the map unchanged.
func (m *Map[K, V]) TryInsert(key K, value V) (Iterator[K, V], bool, error) {
	h, ok, err := m.t.insert(key, value)
	return Iterator[K, V]{m.t, h}, ok, err
}

// Insert is like TryInsert but panics if the map is full.
func (m *Map[K, V]) Insert(key K, value V) (Iterator[K, V], bool) {
	it, ok, err := m.TryInsert(key, value)
	if err != nil {
		panic(err)
	}
	return it, ok
}

// InsertRange inserts every element in [first, last), skipping keys that are
// already in the map.
func (m *Map[K, V]) InsertRange(first, last Iterator[K, V]) {
	for ; !first.Equal(last); first = first.Next() {
		m.Insert(first.Key(), first.Value())
	}
}

// Erase removes the element the iterator refers to.  The iterator must refer
// to an element of this map.
func (m *Map[K, V]) Erase(it Iterator[K, V]) {
	if it.t != m.t {
		panic("ordmap: iterator of another map")
	}
	it.deref()
	m.t.erase(it.h)
}

// EraseKey removes the element with the given key and returns the number of
// removed elements, i.e. zero or one.
func (m *Map[K, V]) EraseKey(key K) int {
	h := m.t.find(key)
	if h == m.t.tail {
		return 0
	}
	m.t.erase(h)
	return 1
}

// EraseRange removes every element in [first, last).
func (m *Map[K, V]) EraseRange(first, last Iterator[K, V]) {
	for !first.Equal(last) {
		next := first.Next()
		m.Erase(first)
		first = next
	}
}

// Clear removes all elements from the map.
func (m *Map[K, V]) Clear() {
	m.t.clear()
}

// Swap exchanges the contents of the two maps in constant time.  Iterators
// keep referring to their elements, which now belong to the other map.
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	m.t, other.t = other.t, m.t
}

// KeyComp returns the key comparator of the map.
func (m *Map[K, V]) KeyComp() Less[K] {
	return m.t.less
}

// ValueComp returns the comparator that orders entries by key.
func (m *Map[K, V]) ValueComp() ValueCompare[K, V] {
	return lift[K, V](m.t.less)
}

// Find returns the iterator to the element with the given key, or End if
// there is no such element.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	return Iterator[K, V]{m.t, m.t.find(key)}
}

// Count returns the number of elements with the given key, i.e. zero or one.
func (m *Map[K, V]) Count(key K) int {
	if m.t.find(key) == m.t.tail {
		return 0
	}
	return 1
}

// LowerBound returns the iterator to the first element whose key is not less
// than the given key, or End.
func (m *Map[K, V]) LowerBound(key K) Iterator[K, V] {
	return Iterator[K, V]{m.t, m.t.lowerBound(key)}
}

// UpperBound returns the iterator to the first element whose key is greater
// than the given key, or End.
func (m *Map[K, V]) UpperBound(key K) Iterator[K, V] {
	return Iterator[K, V]{m.t, m.t.upperBound(key)}
}

// EqualRange returns LowerBound(key) advanced by one, unless it is End, along
// with UpperBound(key).  If the key is present both iterators are equal.  If
// it is absent and LowerBound(key) is an element, first is the successor of
// last; callers walking [first, last) must check for that.
func (m *Map[K, V]) EqualRange(key K) (first, last Iterator[K, V]) {
	f, l := m.t.equalRange(key)
	return Iterator[K, V]{m.t, f}, Iterator[K, V]{m.t, l}
}

// ascend calls iterator for every element from it up to, but not including,
// stop, or until stop reports true.
func (m *Map[K, V]) ascend(it Iterator[K, V], stop func(K) bool, iterator EntryIterator[K, V]) {
	for ; !it.IsEnd(); it = it.Next() {
		n := it.deref()
		if stop != nil && stop(n.key) {
			return
		}
		if !iterator(n.key, n.value) {
			return
		}
	}
}

// descend is the mirror image of ascend.
func (m *Map[K, V]) descend(it Iterator[K, V], stop func(K) bool, iterator EntryIterator[K, V]) {
	for ; !it.IsREnd(); it = it.Prev() {
		n := it.deref()
		if stop != nil && stop(n.key) {
			return
		}
		if !iterator(n.key, n.value) {
			return
		}
	}
}

// Ascend calls the iterator for every element in the map within the range
// [first, last], until iterator returns false.
func (m *Map[K, V]) Ascend(iterator EntryIterator[K, V]) {
	m.ascend(m.Begin(), nil, iterator)
}

// AscendRange calls the iterator for every element in the map within the
// range [greaterOrEqual, lessThan), until iterator returns false.
func (m *Map[K, V]) AscendRange(greaterOrEqual, lessThan K, iterator EntryIterator[K, V]) {
	m.ascend(m.LowerBound(greaterOrEqual), func(k K) bool {
		return !m.t.less(k, lessThan)
	}, iterator)
}

// AscendLessThan calls the iterator for every element in the map within the
// range [first, pivot), until iterator returns false.
func (m *Map[K, V]) AscendLessThan(pivot K, iterator EntryIterator[K, V]) {
	m.ascend(m.Begin(), func(k K) bool {
		return !m.t.less(k, pivot)
	}, iterator)
}

// AscendGreaterOrEqual calls the iterator for every element in the map within
// the range [pivot, last], until iterator returns false.
func (m *Map[K, V]) AscendGreaterOrEqual(pivot K, iterator EntryIterator[K, V]) {
	m.ascend(m.LowerBound(pivot), nil, iterator)
}

// Descend calls the iterator for every element in the map within the range
// [last, first], until iterator returns false.
func (m *Map[K, V]) Descend(iterator EntryIterator[K, V]) {
	m.descend(m.RBegin().Base(), nil, iterator)
}

// DescendRange calls the iterator for every element in the map within the
// range [lessOrEqual, greaterThan), until iterator returns false.
func (m *Map[K, V]) DescendRange(lessOrEqual, greaterThan K, iterator EntryIterator[K, V]) {
	m.descend(m.UpperBound(lessOrEqual).Prev(), func(k K) bool {
		return !m.t.less(greaterThan, k)
	}, iterator)
}

// DescendLessOrEqual calls the iterator for every element in the map within
// the range [pivot, first], until iterator returns false.
func (m *Map[K, V]) DescendLessOrEqual(pivot K, iterator EntryIterator[K, V]) {
	m.descend(m.UpperBound(pivot).Prev(), nil, iterator)
}

// DescendGreaterThan calls the iterator for every element in the map within
// the range [last, pivot), until iterator returns false.
func (m *Map[K, V]) DescendGreaterThan(pivot K, iterator EntryIterator[K, V]) {
	m.descend(m.RBegin().Base(), func(k K) bool {
		return !m.t.less(pivot, k)
	}, iterator)
}
