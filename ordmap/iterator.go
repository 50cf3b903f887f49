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

// Iterator is a position within a map.  It is either an element, the end
// position one past the maximum, or the reverse-end position one before the
// minimum.
//
// Iterators are small values and are meant to be copied.  An iterator stays
// valid until the element it refers to is erased; other mutations, including
// Swap, do not affect it.
type Iterator[K, V any] struct {
	t *tree[K, V]
	h handle
}

// Next returns the iterator to the successor.  Calling Next on End is a
// contract violation.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{it.t, it.t.nodes.next(it.h)}
}

// Prev returns the iterator to the predecessor.  Prev of Begin is the
// reverse-end position.
func (it Iterator[K, V]) Prev() Iterator[K, V] {
	return Iterator[K, V]{it.t, it.t.nodes.prev(it.h)}
}

// Equal reports whether both iterators refer to the same position.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.t == other.t && it.h == other.h
}

// IsEnd reports whether the iterator is past the maximum element.
func (it Iterator[K, V]) IsEnd() bool {
	return it.h == it.t.tail
}

// IsREnd reports whether the iterator is before the minimum element.
func (it Iterator[K, V]) IsREnd() bool {
	return it.h == it.t.head
}

// deref returns the node the iterator refers to, which must be an element.
func (it Iterator[K, V]) deref() *node[K, V] {
	n := it.t.nodes.at(it.h)
	if n.kind != payload {
		panic("ordmap: dereference of a non-element position")
	}
	return n
}

// Key returns the key of the element.
func (it Iterator[K, V]) Key() K {
	return it.deref().key
}

// Value returns the value of the element.
func (it Iterator[K, V]) Value() V {
	return it.deref().value
}

// Entry returns the key-value pair of the element.
func (it Iterator[K, V]) Entry() Entry[K, V] {
	n := it.deref()
	return Entry[K, V]{n.key, n.value}
}

// Pointer returns a pointer to the value of the element.  The pointer remains
// valid until the element is erased.
func (it Iterator[K, V]) Pointer() *V {
	return &it.deref().value
}

// SetValue replaces the value of the element.
func (it Iterator[K, V]) SetValue(value V) {
	it.deref().value = value
}

// ReverseIterator walks a map from the maximum towards the minimum.
type ReverseIterator[K, V any] struct {
	base Iterator[K, V]
}

// Reverse wraps the iterator so that Next and Prev swap their directions.
func Reverse[K, V any](it Iterator[K, V]) ReverseIterator[K, V] {
	return ReverseIterator[K, V]{it}
}

// Base returns the wrapped forward iterator.
func (it ReverseIterator[K, V]) Base() Iterator[K, V] {
	return it.base
}

// Next returns the iterator to the predecessor.
func (it ReverseIterator[K, V]) Next() ReverseIterator[K, V] {
	return ReverseIterator[K, V]{it.base.Prev()}
}

// Prev returns the iterator to the successor.
func (it ReverseIterator[K, V]) Prev() ReverseIterator[K, V] {
	return ReverseIterator[K, V]{it.base.Next()}
}

// Equal reports whether both iterators refer to the same position.
func (it ReverseIterator[K, V]) Equal(other ReverseIterator[K, V]) bool {
	return it.base.Equal(other.base)
}

// IsEnd reports whether the iterator is before the minimum element.
func (it ReverseIterator[K, V]) IsEnd() bool {
	return it.base.IsREnd()
}

// Key returns the key of the element.
func (it ReverseIterator[K, V]) Key() K { return it.base.Key() }

// Value returns the value of the element.
func (it ReverseIterator[K, V]) Value() V { return it.base.Value() }

// Entry returns the key-value pair of the element.
func (it ReverseIterator[K, V]) Entry() Entry[K, V] { return it.base.Entry() }

// Pointer returns a pointer to the value of the element.
func (it ReverseIterator[K, V]) Pointer() *V { return it.base.Pointer() }

// SetValue replaces the value of the element.
func (it ReverseIterator[K, V]) SetValue(value V) { it.base.SetValue(value) }
