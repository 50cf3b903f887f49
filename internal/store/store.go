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

// Package store provides a synchronized key-value store on top of an ordered
// map.  Keys are strings in byte order and values are protobuf values, so the
// store can be served over gRPC without any conversion of its contents.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/9rum/ordmap/ordmap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	// ErrNotFound is returned when there is no entry for the requested key or
	// position.
	ErrNotFound = errors.New("store: not found")

	// ErrFull is returned when the store cannot hold any more entries.
	ErrFull = errors.New("store: full")
)

// Entry is a single key-value pair of the store.
type Entry = ordmap.Entry[string, *structpb.Value]

// Bounds selects the window [From, To) of keys.  From and To are optional; a
// nil From starts at the minimum and a nil To ends past the maximum.  When
// Reverse is set, the window is walked in descending order.  Limit caps the
// number of returned entries if positive.
type Bounds struct {
	From    *string
	To      *string
	Reverse bool
	Limit   int
}

// Store represents the key-value store.
// All implementations must embed StoreBase for forward compatibility.
type Store interface {
	// Insert adds the given entry unless the key already exists.  This returns
	// the entry that is stored under the key and whether it was inserted.
	Insert(key string, value *structpb.Value) (Entry, bool, error)

	// Put maps the key to the given value, adding the key if necessary.
	Put(key string, value *structpb.Value) (Entry, error)

	// Find looks for the entry with the given key.
	Find(key string) (Entry, error)

	// Erase removes the entry with the given key and returns the number of
	// removed entries.
	Erase(key string) int

	// LowerBound returns the first entry whose key is not less than the given
	// key.
	LowerBound(key string) (Entry, error)

	// UpperBound returns the first entry whose key is greater than the given
	// key.
	UpperBound(key string) (Entry, error)

	// EqualRange returns the entries in the equal range of the given key.
	EqualRange(key string) []Entry

	// Range returns the entries within the given bounds.
	Range(bounds Bounds) []Entry

	// Len returns the number of entries currently in the store.
	Len() int

	// Clear removes all entries.
	Clear()
}

// StoreBase must be embedded to have forward compatible implementations.
type StoreBase struct {
}

func (StoreBase) Insert(key string, value *structpb.Value) (_ Entry, _ bool, _ error) {
	return
}
func (StoreBase) Put(key string, value *structpb.Value) (_ Entry, _ error) {
	return
}
func (StoreBase) Find(key string) (_ Entry, _ error) {
	return
}
func (StoreBase) Erase(key string) (_ int) {
	return
}
func (StoreBase) LowerBound(key string) (_ Entry, _ error) {
	return
}
func (StoreBase) UpperBound(key string) (_ Entry, _ error) {
	return
}
func (StoreBase) EqualRange(key string) (_ []Entry) {
	return
}
func (StoreBase) Range(bounds Bounds) (_ []Entry) {
	return
}
func (StoreBase) Len() (_ int) {
	return
}
func (StoreBase) Clear() {}

// LockedStore guards a single ordered map with a readers-writer lock.  Lookups
// and walks share the lock; everything that may insert or erase holds it
// exclusively.  Values are copied on the way in and out, so callers never
// alias the stored messages.
type LockedStore struct {
	StoreBase
	mu    sync.RWMutex
	items *ordmap.Map[string, *structpb.Value]
}

// New creates a new locked store that holds at most maxSize entries; zero
// means the default limit of the underlying map.
func New(maxSize int) *LockedStore {
	return &LockedStore{
		items: ordmap.NewOrdered[string, *structpb.Value](ordmap.WithMaxSize(maxSize)),
	}
}

// clone deep-copies the given value.  A nil value is stored as a null value.
func clone(value *structpb.Value) *structpb.Value {
	if value == nil {
		return structpb.NewNullValue()
	}
	return proto.Clone(value).(*structpb.Value)
}

// entry copies the element the iterator refers to.
func entry(it ordmap.Iterator[string, *structpb.Value]) Entry {
	return Entry{Key: it.Key(), Value: clone(it.Value())}
}

// Insert adds the given entry unless the key already exists.
func (s *LockedStore) Insert(key string, value *structpb.Value) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok, err := s.items.TryInsert(key, clone(value))
	if errors.Is(err, ordmap.ErrExhausted) {
		return Entry{}, false, fmt.Errorf("%w: %d entries", ErrFull, s.items.Len())
	}
	return entry(it), ok, err
}

// Put maps the key to the given value, adding the key if necessary.
func (s *LockedStore) Put(key string, value *structpb.Value) (ent Entry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ref panics when the map is full; report that as ErrFull.
	defer func() {
		if r := recover(); r != nil {
			if r != ordmap.ErrExhausted {
				panic(r)
			}
			ent, err = Entry{}, fmt.Errorf("%w: %d entries", ErrFull, s.items.Len())
		}
	}()

	*s.items.Ref(key) = clone(value)
	return s.find(key)
}

// find looks for the entry with the given key.  The caller must hold the lock.
func (s *LockedStore) find(key string) (Entry, error) {
	it := s.items.Find(key)
	if it.IsEnd() {
		return Entry{}, fmt.Errorf("%w: key %q", ErrNotFound, key)
	}
	return entry(it), nil
}

// Find looks for the entry with the given key.
func (s *LockedStore) Find(key string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.find(key)
}

// Erase removes the entry with the given key.
func (s *LockedStore) Erase(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.EraseKey(key)
}

// bound converts the given position into an entry.
func bound(it ordmap.Iterator[string, *structpb.Value], key string) (Entry, error) {
	if it.IsEnd() {
		return Entry{}, fmt.Errorf("%w: no entry after %q", ErrNotFound, key)
	}
	return entry(it), nil
}

// LowerBound returns the first entry whose key is not less than the given key.
func (s *LockedStore) LowerBound(key string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return bound(s.items.LowerBound(key), key)
}

// UpperBound returns the first entry whose key is greater than the given key.
func (s *LockedStore) UpperBound(key string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return bound(s.items.UpperBound(key), key)
}

// EqualRange returns the entries in the equal range of the given key.  The
// range is empty when its lower end does not precede its upper end.
func (s *LockedStore) EqualRange(key string) (out []Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	first, last := s.items.EqualRange(key)
	if first.IsEnd() || !last.IsEnd() && last.Key() <= first.Key() {
		return nil
	}
	for ; !first.Equal(last); first = first.Next() {
		out = append(out, entry(first))
	}
	return
}

// Range returns the entries within the given bounds.
func (s *LockedStore) Range(bounds Bounds) (out []Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	collect := func(key string, value *structpb.Value) bool {
		out = append(out, Entry{Key: key, Value: clone(value)})
		return bounds.Limit <= 0 || len(out) < bounds.Limit
	}

	from, to := bounds.From, bounds.To
	if bounds.Reverse {
		it := s.items.RBegin()
		if to != nil {
			it = ordmap.Reverse(s.items.LowerBound(*to).Prev())
		}
		for ; !it.IsEnd(); it = it.Next() {
			if from != nil && it.Key() < *from {
				break
			}
			if !collect(it.Key(), it.Value()) {
				break
			}
		}
		return
	}

	switch {
	case from != nil && to != nil:
		s.items.AscendRange(*from, *to, collect)
	case from != nil:
		s.items.AscendGreaterOrEqual(*from, collect)
	case to != nil:
		s.items.AscendLessThan(*to, collect)
	default:
		s.items.Ascend(collect)
	}
	return
}

// Len returns the number of entries currently in the store.
func (s *LockedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.items.Len()
}

// Clear removes all entries.
func (s *LockedStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items.Clear()
}
