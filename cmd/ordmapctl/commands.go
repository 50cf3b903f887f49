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

package main

import (
	"context"
	"fmt"

	"github.com/9rum/ordmap/internal/store"
	"github.com/9rum/ordmap/server"
	"github.com/golang/protobuf/ptypes/empty"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var cmdInsert = &cli.Command{
	Name:      "insert",
	Usage:     "add an entry unless the key exists",
	ArgsUsage: `<key> [<json-value>]`,
	Action:    runInsert,
}

var cmdPut = &cli.Command{
	Name:      "put",
	Usage:     "set the value of a key, adding it if necessary",
	ArgsUsage: `<key> [<json-value>]`,
	Action:    runPut,
}

var cmdGet = &cli.Command{
	Name:      "get",
	Aliases:   []string{"find"},
	Usage:     "print the entry of a key",
	ArgsUsage: `<key>`,
	Action:    runGet,
}

var cmdErase = &cli.Command{
	Name:      "erase",
	Aliases:   []string{"rm"},
	Usage:     "remove the entry of a key",
	ArgsUsage: `<key>`,
	Action:    runErase,
}

var cmdLower = &cli.Command{
	Name:      "lower",
	Usage:     "print the first entry whose key is not less than the given key",
	ArgsUsage: `<key>`,
	Action:    runLower,
}

var cmdUpper = &cli.Command{
	Name:      "upper",
	Usage:     "print the first entry whose key is greater than the given key",
	ArgsUsage: `<key>`,
	Action:    runUpper,
}

var cmdRange = &cli.Command{
	Name:    "range",
	Aliases: []string{"ls"},
	Usage:   "print the entries within [from, to)",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "from",
			Usage: "first key of the window",
		},
		&cli.StringFlag{
			Name:  "to",
			Usage: "key past the end of the window",
		},
		&cli.BoolFlag{
			Name:    "reverse",
			Aliases: []string{"r"},
			Usage:   "walk the window in descending order",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "maximum number of entries; 0 means all",
		},
	},
	Action: runRange,
}

var cmdLen = &cli.Command{
	Name:   "len",
	Usage:  "print the number of entries",
	Action: runLen,
}

var cmdClear = &cli.Command{
	Name:   "clear",
	Usage:  "remove all entries",
	Action: runClear,
}

var cmdFinalize = &cli.Command{
	Name:   "finalize",
	Usage:  "stop the server",
	Action: runFinalize,
}

// key returns the first argument of the command.
func key(cctx *cli.Context) (string, error) {
	if !cctx.Args().Present() {
		return "", fmt.Errorf("need to provide a key as an argument")
	}
	return cctx.Args().First(), nil
}

// entry reads a key and an optional value from the arguments.  The value is
// parsed as JSON and taken as a plain string when it is not valid JSON.
func entry(cctx *cli.Context) (*structpb.Struct, error) {
	k, err := key(cctx)
	if err != nil {
		return nil, err
	}
	value := structpb.NewNullValue()
	if 1 < cctx.Args().Len() {
		raw := cctx.Args().Get(1)
		value = new(structpb.Value)
		if err := protojson.Unmarshal([]byte(raw), value); err != nil {
			value = structpb.NewStringValue(raw)
		}
	}
	return server.NewEntry(k, value), nil
}

// printJSON writes the given message as a single line of JSON.
func printJSON(m proto.Message) error {
	b, err := protojson.Marshal(m)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func runInsert(cctx *cli.Context) error {
	in, err := entry(cctx)
	if err != nil {
		return err
	}
	return call(cctx, func(ctx context.Context, c server.OrderedMapClient) error {
		out, err := c.Insert(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(out)
	})
}

func runPut(cctx *cli.Context) error {
	in, err := entry(cctx)
	if err != nil {
		return err
	}
	return call(cctx, func(ctx context.Context, c server.OrderedMapClient) error {
		out, err := c.Put(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(out)
	})
}

// lookup runs one of the single-key lookups of the client.
func lookup(cctx *cli.Context, method func(server.OrderedMapClient, context.Context, *wrapperspb.StringValue, ...grpc.CallOption) (*structpb.Struct, error)) error {
	k, err := key(cctx)
	if err != nil {
		return err
	}
	return call(cctx, func(ctx context.Context, c server.OrderedMapClient) error {
		out, err := method(c, ctx, wrapperspb.String(k))
		if err != nil {
			return err
		}
		return printJSON(out)
	})
}

func runGet(cctx *cli.Context) error {
	return lookup(cctx, server.OrderedMapClient.Find)
}

func runLower(cctx *cli.Context) error {
	return lookup(cctx, server.OrderedMapClient.LowerBound)
}

func runUpper(cctx *cli.Context) error {
	return lookup(cctx, server.OrderedMapClient.UpperBound)
}

func runErase(cctx *cli.Context) error {
	k, err := key(cctx)
	if err != nil {
		return err
	}
	return call(cctx, func(ctx context.Context, c server.OrderedMapClient) error {
		out, err := c.Erase(ctx, wrapperspb.String(k))
		if err != nil {
			return err
		}
		fmt.Println(out.GetValue())
		return nil
	})
}

func runRange(cctx *cli.Context) error {
	bounds := store.Bounds{
		Reverse: cctx.Bool("reverse"),
		Limit:   cctx.Int("limit"),
	}
	if cctx.IsSet("from") {
		from := cctx.String("from")
		bounds.From = &from
	}
	if cctx.IsSet("to") {
		to := cctx.String("to")
		bounds.To = &to
	}
	if bounds.Limit < 0 {
		return fmt.Errorf("invalid limit: %d", bounds.Limit)
	}
	return call(cctx, func(ctx context.Context, c server.OrderedMapClient) error {
		out, err := c.Range(ctx, server.NewBounds(bounds))
		if err != nil {
			return err
		}
		for _, v := range out.GetValues() {
			if err := printJSON(v.GetStructValue()); err != nil {
				return err
			}
		}
		return nil
	})
}

func runLen(cctx *cli.Context) error {
	return call(cctx, func(ctx context.Context, c server.OrderedMapClient) error {
		out, err := c.Len(ctx, new(empty.Empty))
		if err != nil {
			return err
		}
		fmt.Println(out.GetValue())
		return nil
	})
}

func runClear(cctx *cli.Context) error {
	return call(cctx, func(ctx context.Context, c server.OrderedMapClient) error {
		_, err := c.Clear(ctx, new(empty.Empty))
		return err
	})
}

func runFinalize(cctx *cli.Context) error {
	return call(cctx, func(ctx context.Context, c server.OrderedMapClient) error {
		_, err := c.Finalize(ctx, new(empty.Empty))
		return err
	})
}
