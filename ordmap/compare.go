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

import "golang.org/x/exp/constraints"

// Less tests whether a is less than b.
//
// This must provide a strict weak ordering; if !less(a, b) && !less(b, a),
// we treat this to mean a == b (i.e., we can only hold one of either a or b
// in the map).
type Less[K any] func(a, b K) bool

// Ordered is the natural ordering of the built-in ordered types.
func Ordered[K constraints.Ordered](a, b K) bool {
	return a < b
}

// Entry is a single key-value pair of a map.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// ValueCompare lifts a key comparator to compare entries by key only,
// ignoring values.
type ValueCompare[K, V any] func(a, b Entry[K, V]) bool

// lift returns the value comparator of less.
func lift[K, V any](less Less[K]) ValueCompare[K, V] {
	return func(a, b Entry[K, V]) bool {
		return less(a.Key, b.Key)
	}
}

// EqualFunc reports whether the two maps hold the same keys in the same order
// and eq reports the values of every pair of entries to be equal.  Keys are
// equal when neither is less than the other under the key comparator of a.
func EqualFunc[K, V any](a, b *Map[K, V], eq func(V, V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	less := a.KeyComp()
	for i, j := a.Begin(), b.Begin(); !i.IsEnd(); i, j = i.Next(), j.Next() {
		if less(i.Key(), j.Key()) || less(j.Key(), i.Key()) || !eq(i.Value(), j.Value()) {
			return false
		}
	}
	return true
}

// Equal reports whether the two maps hold equal entries in traversal order.
func Equal[K any, V comparable](a, b *Map[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool {
		return x == y
	})
}

// Compare orders the two maps lexicographically by their entries, using the
// value comparator of a.  The result is -1 if a sorts before b, +1 if a sorts
// after b and 0 otherwise.
func Compare[K, V any](a, b *Map[K, V]) int {
	less := a.ValueComp()
	i, j := a.Begin(), b.Begin()
	for ; !i.IsEnd() && !j.IsEnd(); i, j = i.Next(), j.Next() {
		x, y := i.Entry(), j.Entry()
		if less(x, y) {
			return -1
		}
		if less(y, x) {
			return 1
		}
	}
	switch {
	case i.IsEnd() && !j.IsEnd():
		return -1
	case !i.IsEnd() && j.IsEnd():
		return 1
	}
	return 0
}

// LessThan reports whether a sorts lexicographically before b.
func LessThan[K, V any](a, b *Map[K, V]) bool {
	return Compare(a, b) < 0
}

// Swap exchanges the contents of the two maps.
func Swap[K, V any](a, b *Map[K, V]) {
	a.Swap(b)
}
