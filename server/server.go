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

// Package server implements OrderedMap service, which exposes a string-keyed
// ordered map to remote clients.  Keys compare in byte order and values are
// arbitrary JSON-like protobuf values.
package server

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"

	"github.com/9rum/ordmap/internal/store"
	"github.com/golang/glog"
	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// orderedMapServer implements the server API for OrderedMap service.
type orderedMapServer struct {
	UnimplementedOrderedMapServer
	store     store.Store
	done      chan<- os.Signal
	finalized atomic.Bool
}

// NewOrderedMapServer creates a new ordered map server on top of the given
// store.  Finalize sends a SIGTERM on done once, so the owner of the channel
// can stop serving.
func NewOrderedMapServer(done chan<- os.Signal, s store.Store) OrderedMapServer {
	return &orderedMapServer{
		store: s,
		done:  done,
	}
}

// errFinalized is returned for every call after Finalize.
var errFinalized = status.Error(codes.FailedPrecondition, "server is finalized")

// check rejects calls once the server is finalized.
func (s *orderedMapServer) check() error {
	if s.finalized.Load() {
		return errFinalized
	}
	return nil
}

// toStatus converts a store error into a gRPC status error.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, store.ErrFull):
		glog.Warningf("rejected: %v", err)
		return status.Error(codes.ResourceExhausted, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// invalid reports a malformed request.
func invalid(method string, err error) error {
	glog.Warningf("%s rejected: %v", method, err)
	return status.Error(codes.InvalidArgument, err.Error())
}

// observe records the current number of entries.
func (s *orderedMapServer) observe() {
	entriesGauge.Set(float64(s.store.Len()))
}

// Insert adds the given entry unless the key already exists.  The response
// carries the stored entry and whether it was inserted.
func (s *orderedMapServer) Insert(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	key, value, err := ParseEntry(in)
	if err != nil {
		return nil, invalid("Insert", err)
	}
	glog.Infof("Insert called with key: %q", key)
	glog.V(1).Infof("Insert value: %v", value)

	e, inserted, err := s.store.Insert(key, value)
	if err != nil {
		return nil, toStatus(err)
	}
	s.observe()

	out := NewEntry(e.Key, e.Value)
	out.Fields[fieldInserted] = structpb.NewBoolValue(inserted)
	return out, nil
}

// Put maps the key to the given value, adding the key if necessary.
func (s *orderedMapServer) Put(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	key, value, err := ParseEntry(in)
	if err != nil {
		return nil, invalid("Put", err)
	}
	glog.Infof("Put called with key: %q", key)
	glog.V(1).Infof("Put value: %v", value)

	e, err := s.store.Put(key, value)
	if err != nil {
		return nil, toStatus(err)
	}
	s.observe()

	return NewEntry(e.Key, e.Value), nil
}

// Find looks for the entry with the given key.
func (s *orderedMapServer) Find(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	glog.Infof("Find called with key: %q", in.GetValue())

	e, err := s.store.Find(in.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return NewEntry(e.Key, e.Value), nil
}

// Erase removes the entry with the given key and returns the number of
// removed entries.
func (s *orderedMapServer) Erase(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	glog.Infof("Erase called with key: %q", in.GetValue())

	n := s.store.Erase(in.GetValue())
	s.observe()

	return wrapperspb.UInt64(uint64(n)), nil
}

// LowerBound returns the first entry whose key is not less than the given key.
func (s *orderedMapServer) LowerBound(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	glog.Infof("LowerBound called with key: %q", in.GetValue())

	e, err := s.store.LowerBound(in.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return NewEntry(e.Key, e.Value), nil
}

// UpperBound returns the first entry whose key is greater than the given key.
func (s *orderedMapServer) UpperBound(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	glog.Infof("UpperBound called with key: %q", in.GetValue())

	e, err := s.store.UpperBound(in.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return NewEntry(e.Key, e.Value), nil
}

// EqualRange returns the entries in the equal range of the given key.
func (s *orderedMapServer) EqualRange(ctx context.Context, in *wrapperspb.StringValue) (*structpb.ListValue, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	glog.Infof("EqualRange called with key: %q", in.GetValue())

	return NewEntries(s.store.EqualRange(in.GetValue())), nil
}

// Range returns the entries within the requested bounds.
func (s *orderedMapServer) Range(ctx context.Context, in *structpb.Struct) (*structpb.ListValue, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	bounds, err := ParseBounds(in)
	if err != nil {
		return nil, invalid("Range", err)
	}
	glog.Infof("Range called with reverse: %t limit: %d", bounds.Reverse, bounds.Limit)

	entries := s.store.Range(bounds)
	glog.V(1).Infof("Range returns %d entries", len(entries))

	return NewEntries(entries), nil
}

// Len returns the number of entries.
func (s *orderedMapServer) Len(ctx context.Context, in *empty.Empty) (*wrapperspb.UInt64Value, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	glog.Info("Len called")

	return wrapperspb.UInt64(uint64(s.store.Len())), nil
}

// Clear removes all entries.
func (s *orderedMapServer) Clear(ctx context.Context, in *empty.Empty) (*empty.Empty, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	glog.Info("Clear called")

	s.store.Clear()
	s.observe()

	return new(empty.Empty), nil
}

// Finalize terminates the service.  Every later call fails with
// FailedPrecondition.
func (s *orderedMapServer) Finalize(ctx context.Context, in *empty.Empty) (*empty.Empty, error) {
	if !s.finalized.CompareAndSwap(false, true) {
		return nil, errFinalized
	}
	defer func() {
		select {
		case s.done <- syscall.SIGTERM:
		default:
		}
	}()

	glog.Info("Finalize called")
	defer glog.Flush()

	return new(empty.Empty), nil
}
