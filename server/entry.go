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

package server

import (
	"fmt"

	"github.com/9rum/ordmap/internal/store"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of the messages exchanged with OrderedMap service.
const (
	fieldKey      = "key"
	fieldValue    = "value"
	fieldInserted = "inserted"
	fieldFrom     = "from"
	fieldTo       = "to"
	fieldReverse  = "reverse"
	fieldLimit    = "limit"
)

// NewEntry encodes the given key-value pair as {"key": key, "value": value}.
func NewEntry(key string, value *structpb.Value) *structpb.Struct {
	if value == nil {
		value = structpb.NewNullValue()
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldKey:   structpb.NewStringValue(key),
		fieldValue: value,
	}}
}

// ParseEntry decodes a key-value pair.  The key is mandatory and must be a
// string; a missing value is read as null.
func ParseEntry(in *structpb.Struct) (string, *structpb.Value, error) {
	key, ok := in.GetFields()[fieldKey]
	if !ok {
		return "", nil, fmt.Errorf("missing field %q", fieldKey)
	}
	if _, ok = key.GetKind().(*structpb.Value_StringValue); !ok {
		return "", nil, fmt.Errorf("field %q must be a string", fieldKey)
	}
	value, ok := in.GetFields()[fieldValue]
	if !ok {
		value = structpb.NewNullValue()
	}
	return key.GetStringValue(), value, nil
}

// NewBounds encodes the given bounds.  Unset bounds are omitted.
func NewBounds(bounds store.Bounds) *structpb.Struct {
	fields := make(map[string]*structpb.Value)
	if bounds.From != nil {
		fields[fieldFrom] = structpb.NewStringValue(*bounds.From)
	}
	if bounds.To != nil {
		fields[fieldTo] = structpb.NewStringValue(*bounds.To)
	}
	if bounds.Reverse {
		fields[fieldReverse] = structpb.NewBoolValue(true)
	}
	if 0 < bounds.Limit {
		fields[fieldLimit] = structpb.NewNumberValue(float64(bounds.Limit))
	}
	return &structpb.Struct{Fields: fields}
}

// ParseBounds decodes the bounds of a range query.
func ParseBounds(in *structpb.Struct) (bounds store.Bounds, err error) {
	for name, field := range in.GetFields() {
		switch name {
		case fieldFrom, fieldTo:
			s, ok := field.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return bounds, fmt.Errorf("field %q must be a string", name)
			}
			if name == fieldFrom {
				bounds.From = &s.StringValue
			} else {
				bounds.To = &s.StringValue
			}
		case fieldReverse:
			b, ok := field.GetKind().(*structpb.Value_BoolValue)
			if !ok {
				return bounds, fmt.Errorf("field %q must be a bool", name)
			}
			bounds.Reverse = b.BoolValue
		case fieldLimit:
			n, ok := field.GetKind().(*structpb.Value_NumberValue)
			if !ok || n.NumberValue < 0 || n.NumberValue != float64(int(n.NumberValue)) {
				return bounds, fmt.Errorf("field %q must be a non-negative integer", name)
			}
			bounds.Limit = int(n.NumberValue)
		default:
			return bounds, fmt.Errorf("unknown field %q", name)
		}
	}
	return
}

// NewEntries encodes the given entries as a list of key-value pairs.
func NewEntries(entries []store.Entry) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(entries))
	for _, e := range entries {
		values = append(values, structpb.NewStructValue(NewEntry(e.Key, e.Value)))
	}
	return &structpb.ListValue{Values: values}
}

// ParseEntries decodes a list of key-value pairs.
func ParseEntries(in *structpb.ListValue) ([]store.Entry, error) {
	entries := make([]store.Entry, 0, len(in.GetValues()))
	for index, v := range in.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("element %d is not an entry", index)
		}
		key, value, err := ParseEntry(s)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", index, err)
		}
		entries = append(entries, store.Entry{Key: key, Value: value})
	}
	return entries, nil
}
