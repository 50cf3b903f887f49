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

// Package main implements the ordered map server. The server stops when a
// client calls Finalize or when the process receives SIGINT or SIGTERM.
package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/9rum/ordmap/internal/store"
	"github.com/9rum/ordmap/server"
	"github.com/golang/glog"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
)

func main() {
	port := flag.Int("p", 50051, "The server port")
	maxSize := flag.Int("max-size", 0, "The maximum number of entries; 0 means the default limit")
	metrics := flag.String("metrics", "", "The address to serve metrics on; empty disables metrics")
	flag.Parse()
	defer glog.Flush()

	if *maxSize < 0 {
		glog.Fatalf("invalid max size: %d", *maxSize)
	}

	if *metrics != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			glog.Infof("metrics listening at %s", *metrics)
			if err := http.ListenAndServe(*metrics, nil); err != nil {
				glog.Errorf("failed to serve metrics: %v", err)
			}
		}()
	}

	if err := serve(*port, *maxSize); err != nil {
		glog.Fatalf("failed to serve: %v", err)
	}
}

func serve(port, maxSize int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}

	s := newServer(maxSize)
	glog.Infof("server listening at %v", lis.Addr())

	return s.Serve(lis)
}

func newServer(maxSize int) *grpc.Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_recovery.UnaryServerInterceptor(),
			server.MetricsInterceptor(),
		),
	)
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func(done <-chan os.Signal, s *grpc.Server) {
		sig := <-done
		glog.Infof("stopping on %v", sig)
		s.GracefulStop()
	}(done, s)

	server.RegisterOrderedMapServer(s, server.NewOrderedMapServer(done, store.New(maxSize)))

	return s
}
