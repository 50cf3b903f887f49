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
	"context"

	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified name of the OrderedMap service.  All
// messages of the service are protobuf well-known types, so there is no
// generated code for it.
const ServiceName = "ordmap.OrderedMap"

// OrderedMapClient is the client API for OrderedMap service.
type OrderedMapClient interface {
	Insert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Put(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Find(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	Erase(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	LowerBound(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpperBound(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	EqualRange(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
	Range(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error)
	Len(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	Clear(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error)
	Finalize(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error)
}

type orderedMapClient struct {
	cc grpc.ClientConnInterface
}

// NewOrderedMapClient creates a new client of OrderedMap service.
func NewOrderedMapClient(cc grpc.ClientConnInterface) OrderedMapClient {
	return &orderedMapClient{cc}
}

// invoke calls the given method of the service and decodes the response into
// a new message of type Resp.
func invoke[Resp any, PResp interface {
	*Resp
	proto.Message
}](ctx context.Context, cc grpc.ClientConnInterface, method string, in proto.Message, opts ...grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderedMapClient) Insert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "Insert", in, opts...)
}

func (c *orderedMapClient) Put(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "Put", in, opts...)
}

func (c *orderedMapClient) Find(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "Find", in, opts...)
}

func (c *orderedMapClient) Erase(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	return invoke[wrapperspb.UInt64Value](ctx, c.cc, "Erase", in, opts...)
}

func (c *orderedMapClient) LowerBound(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "LowerBound", in, opts...)
}

func (c *orderedMapClient) UpperBound(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "UpperBound", in, opts...)
}

func (c *orderedMapClient) EqualRange(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, "EqualRange", in, opts...)
}

func (c *orderedMapClient) Range(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, "Range", in, opts...)
}

func (c *orderedMapClient) Len(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	return invoke[wrapperspb.UInt64Value](ctx, c.cc, "Len", in, opts...)
}

func (c *orderedMapClient) Clear(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error) {
	return invoke[empty.Empty](ctx, c.cc, "Clear", in, opts...)
}

func (c *orderedMapClient) Finalize(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error) {
	return invoke[empty.Empty](ctx, c.cc, "Finalize", in, opts...)
}

// OrderedMapServer is the server API for OrderedMap service.
// All implementations must embed UnimplementedOrderedMapServer
// for forward compatibility.
type OrderedMapServer interface {
	Insert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Put(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Find(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Erase(context.Context, *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error)
	LowerBound(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	UpperBound(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	EqualRange(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	Range(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	Len(context.Context, *empty.Empty) (*wrapperspb.UInt64Value, error)
	Clear(context.Context, *empty.Empty) (*empty.Empty, error)
	Finalize(context.Context, *empty.Empty) (*empty.Empty, error)
	mustEmbedUnimplementedOrderedMapServer()
}

// UnimplementedOrderedMapServer must be embedded to have forward compatible implementations.
type UnimplementedOrderedMapServer struct {
}

func (UnimplementedOrderedMapServer) Insert(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Insert not implemented")
}
func (UnimplementedOrderedMapServer) Put(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Put not implemented")
}
func (UnimplementedOrderedMapServer) Find(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Find not implemented")
}
func (UnimplementedOrderedMapServer) Erase(context.Context, *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Erase not implemented")
}
func (UnimplementedOrderedMapServer) LowerBound(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LowerBound not implemented")
}
func (UnimplementedOrderedMapServer) UpperBound(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpperBound not implemented")
}
func (UnimplementedOrderedMapServer) EqualRange(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EqualRange not implemented")
}
func (UnimplementedOrderedMapServer) Range(context.Context, *structpb.Struct) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Range not implemented")
}
func (UnimplementedOrderedMapServer) Len(context.Context, *empty.Empty) (*wrapperspb.UInt64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Len not implemented")
}
func (UnimplementedOrderedMapServer) Clear(context.Context, *empty.Empty) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Clear not implemented")
}
func (UnimplementedOrderedMapServer) Finalize(context.Context, *empty.Empty) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Finalize not implemented")
}
func (UnimplementedOrderedMapServer) mustEmbedUnimplementedOrderedMapServer() {}

// RegisterOrderedMapServer registers the given implementation of OrderedMap
// service.
func RegisterOrderedMapServer(s grpc.ServiceRegistrar, srv OrderedMapServer) {
	s.RegisterService(&OrderedMap_ServiceDesc, srv)
}

// method describes a unary method of the service.  newRequest allocates the
// message the request is decoded into and call dispatches to the server.
func method[Req, Resp proto.Message](name string, newRequest func() Req, call func(OrderedMapServer, context.Context, Req) (Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := newRequest()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(OrderedMapServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(OrderedMapServer), ctx, req.(Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func newStruct() *structpb.Struct { return new(structpb.Struct) }
func newString() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }
func newEmpty() *empty.Empty { return new(empty.Empty) }

// OrderedMap_ServiceDesc is the grpc.ServiceDesc for OrderedMap service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy).
var OrderedMap_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderedMapServer)(nil),
	Methods: []grpc.MethodDesc{
		method("Insert", newStruct, OrderedMapServer.Insert),
		method("Put", newStruct, OrderedMapServer.Put),
		method("Find", newString, OrderedMapServer.Find),
		method("Erase", newString, OrderedMapServer.Erase),
		method("LowerBound", newString, OrderedMapServer.LowerBound),
		method("UpperBound", newString, OrderedMapServer.UpperBound),
		method("EqualRange", newString, OrderedMapServer.EqualRange),
		method("Range", newStruct, OrderedMapServer.Range),
		method("Len", newEmpty, OrderedMapServer.Len),
		method("Clear", newEmpty, OrderedMapServer.Clear),
		method("Finalize", newEmpty, OrderedMapServer.Finalize),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ordmap.proto",
}
