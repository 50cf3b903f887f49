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
	"fmt"
	"net"
	"os"
	"testing"

	"github.com/9rum/ordmap/internal/store"
	"github.com/golang/protobuf/ptypes/empty"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// dial starts an in-process server on top of a store of the given size and
// returns a client connected to it along with the done channel of the server.
func dial(t *testing.T, maxSize int) (OrderedMapClient, <-chan os.Signal) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(MetricsInterceptor()))
	done := make(chan os.Signal, 1)
	RegisterOrderedMapServer(srv, NewOrderedMapServer(done, store.New(maxSize)))

	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewOrderedMapClient(conn), done
}

// keys extracts the keys of the given list of entries.
func keys(t *testing.T, list *structpb.ListValue) (out []string) {
	entries, err := ParseEntries(list)
	require.NoError(t, err)
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return
}

func code(err error) codes.Code {
	return status.Code(err)
}

func TestOrderedMapServer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, _ := dial(t, 0)

	for _, k := range []string{"d", "b", "f", "a", "c", "e"} {
		r, err := c.Insert(ctx, NewEntry(k, structpb.NewStringValue(k)))
		require.NoError(err)
		require.True(r.GetFields()[fieldInserted].GetBoolValue())
	}

	r, err := c.Insert(ctx, NewEntry("d", structpb.NewNumberValue(4)))
	require.NoError(err)
	require.False(r.GetFields()[fieldInserted].GetBoolValue())
	require.Equal("d", r.GetFields()[fieldValue].GetStringValue())

	r, err = c.Put(ctx, NewEntry("d", structpb.NewNumberValue(4)))
	require.NoError(err)
	require.Equal(float64(4), r.GetFields()[fieldValue].GetNumberValue())

	r, err = c.Find(ctx, wrapperspb.String("d"))
	require.NoError(err)
	require.Equal(float64(4), r.GetFields()[fieldValue].GetNumberValue())

	_, err = c.Find(ctx, wrapperspb.String("z"))
	require.Equal(codes.NotFound, code(err))

	n, err := c.Len(ctx, new(empty.Empty))
	require.NoError(err)
	require.EqualValues(6, n.GetValue())

	n, err = c.Erase(ctx, wrapperspb.String("c"))
	require.NoError(err)
	require.EqualValues(1, n.GetValue())
	n, err = c.Erase(ctx, wrapperspb.String("c"))
	require.NoError(err)
	require.EqualValues(0, n.GetValue())

	r, err = c.LowerBound(ctx, wrapperspb.String("c"))
	require.NoError(err)
	require.Equal("d", r.GetFields()[fieldKey].GetStringValue())
	r, err = c.UpperBound(ctx, wrapperspb.String("d"))
	require.NoError(err)
	require.Equal("e", r.GetFields()[fieldKey].GetStringValue())
	_, err = c.UpperBound(ctx, wrapperspb.String("f"))
	require.Equal(codes.NotFound, code(err))

	for _, k := range []string{"d", "c", "0", "z"} {
		list, err := c.EqualRange(ctx, wrapperspb.String(k))
		require.NoError(err)
		require.Empty(list.GetValues(), "key %q", k)
	}

	from, to := "b", "f"
	list, err := c.Range(ctx, NewBounds(store.Bounds{From: &from, To: &to}))
	require.NoError(err)
	require.Equal([]string{"b", "d", "e"}, keys(t, list))

	list, err = c.Range(ctx, NewBounds(store.Bounds{Reverse: true, Limit: 2}))
	require.NoError(err)
	require.Equal([]string{"f", "e"}, keys(t, list))

	_, err = c.Clear(ctx, new(empty.Empty))
	require.NoError(err)
	n, err = c.Len(ctx, new(empty.Empty))
	require.NoError(err)
	require.Zero(n.GetValue())
}

func TestInvalidArgument(t *testing.T) {
	ctx := context.Background()
	c, _ := dial(t, 0)

	for _, in := range []*structpb.Struct{
		{},
		{Fields: map[string]*structpb.Value{fieldKey: structpb.NewNumberValue(1)}},
	} {
		_, err := c.Insert(ctx, in)
		require.Equal(t, codes.InvalidArgument, code(err))
		_, err = c.Put(ctx, in)
		require.Equal(t, codes.InvalidArgument, code(err))
	}

	for _, fields := range []map[string]*structpb.Value{
		{fieldFrom: structpb.NewBoolValue(true)},
		{fieldReverse: structpb.NewStringValue("yes")},
		{fieldLimit: structpb.NewNumberValue(-1)},
		{fieldLimit: structpb.NewNumberValue(1.5)},
		{"step": structpb.NewNumberValue(1)},
	} {
		_, err := c.Range(ctx, &structpb.Struct{Fields: fields})
		require.Equal(t, codes.InvalidArgument, code(err), "fields %v", fields)
	}
}

func TestResourceExhausted(t *testing.T) {
	ctx := context.Background()
	c, _ := dial(t, 2)

	for _, k := range []string{"a", "b"} {
		_, err := c.Insert(ctx, NewEntry(k, nil))
		require.NoError(t, err)
	}
	_, err := c.Insert(ctx, NewEntry("c", nil))
	require.Equal(t, codes.ResourceExhausted, code(err))
	_, err = c.Put(ctx, NewEntry("c", nil))
	require.Equal(t, codes.ResourceExhausted, code(err))

	n, err := c.Len(ctx, new(empty.Empty))
	require.NoError(t, err)
	require.EqualValues(t, 2, n.GetValue())
}

func TestFinalize(t *testing.T) {
	ctx := context.Background()
	c, done := dial(t, 0)

	_, err := c.Finalize(ctx, new(empty.Empty))
	require.NoError(t, err)
	require.Len(t, done, 1)

	_, err = c.Finalize(ctx, new(empty.Empty))
	require.Equal(t, codes.FailedPrecondition, code(err))
	_, err = c.Len(ctx, new(empty.Empty))
	require.Equal(t, codes.FailedPrecondition, code(err))
	require.Len(t, done, 1)
}

func TestConcurrentClients(t *testing.T) {
	const (
		clients   = 1 << 3
		perClient = 1 << 6
	)
	ctx := context.Background()
	c, _ := dial(t, 0)

	var g errgroup.Group
	for id := 0; id < clients; id++ {
		id := id
		g.Go(func() error {
			for i := 0; i < perClient; i++ {
				key := fmt.Sprintf("%02d/%02d", id, i)
				if _, err := c.Put(ctx, NewEntry(key, structpb.NewNumberValue(float64(i)))); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	list, err := c.Range(ctx, NewBounds(store.Bounds{}))
	require.NoError(t, err)
	got := keys(t, list)
	require.Len(t, got, clients*perClient)
	require.IsIncreasing(t, got)
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	c, _ := dial(t, 0)

	ok := requestsTotal.WithLabelValues("Len", codes.OK.String())
	notFound := requestsTotal.WithLabelValues("Find", codes.NotFound.String())
	before, missed := testutil.ToFloat64(ok), testutil.ToFloat64(notFound)

	_, err := c.Len(ctx, new(empty.Empty))
	require.NoError(t, err)
	_, err = c.Find(ctx, wrapperspb.String("missing"))
	require.Error(t, err)

	require.Equal(t, before+1, testutil.ToFloat64(ok))
	require.Equal(t, missed+1, testutil.ToFloat64(notFound))

	_, err = c.Insert(ctx, NewEntry("k", nil))
	require.NoError(t, err)
	require.Equal(t, float64(1), testutil.ToFloat64(entriesGauge))
}

func TestEntries(t *testing.T) {
	entries := []store.Entry{
		{Key: "a", Value: structpb.NewNumberValue(1)},
		{Key: "b", Value: structpb.NewNullValue()},
	}
	got, err := ParseEntries(NewEntries(entries))
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range entries {
		require.Equal(t, entries[i].Key, got[i].Key)
		require.Equal(t, entries[i].Value.AsInterface(), got[i].Value.AsInterface())
	}

	_, err = ParseEntries(&structpb.ListValue{Values: []*structpb.Value{structpb.NewStringValue("a")}})
	require.Error(t, err)

	from := "m"
	bounds, err := ParseBounds(NewBounds(store.Bounds{From: &from, Reverse: true, Limit: 3}))
	require.NoError(t, err)
	require.Equal(t, "m", *bounds.From)
	require.Nil(t, bounds.To)
	require.True(t, bounds.Reverse)
	require.Equal(t, 3, bounds.Limit)
}
