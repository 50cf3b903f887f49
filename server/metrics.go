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
	"path"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ordmap_requests_total",
	Help: "Number of requests handled by the ordered map service",
}, []string{"method", "code"})

var entriesGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "ordmap_entries",
	Help: "Number of entries currently in the ordered map",
})

// MetricsInterceptor counts every unary call by method and status code.
func MetricsInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		requestsTotal.WithLabelValues(path.Base(info.FullMethod), status.Code(err).String()).Inc()
		return resp, err
	}
}
