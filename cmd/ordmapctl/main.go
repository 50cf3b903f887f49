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

// Command ordmapctl is a command-line client of the ordered map server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/9rum/ordmap/server"
	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "ordmapctl",
		Usage:   "ordered map server CLI tool",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "host and port of the ordered map server",
				Value:   "localhost:50051",
				EnvVars: []string{"ORDMAP_ADDR"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "deadline of each request",
				Value: 5 * time.Second,
			},
		},
	}
	app.Commands = []*cli.Command{
		cmdInsert,
		cmdPut,
		cmdGet,
		cmdErase,
		cmdLower,
		cmdUpper,
		cmdRange,
		cmdLen,
		cmdClear,
		cmdFinalize,
	}
	return app.Run(args)
}

// call connects to the server and invokes fn with a client bounded by the
// request deadline.
func call(cctx *cli.Context, fn func(ctx context.Context, c server.OrderedMapClient) error) error {
	conn, err := grpc.Dial(cctx.String("addr"), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("did not connect: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cctx.Context, cctx.Duration("timeout"))
	defer cancel()

	return fn(ctx, server.NewOrderedMapClient(conn))
}
