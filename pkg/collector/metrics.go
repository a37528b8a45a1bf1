// Copyright (c) 2025, Golem Factory GmbH.  All rights reserved.
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

package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GPU collection metrics
	collectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gpuinfo_collection_duration_seconds",
			Help:    "Time taken to run a complete GPU detection pass",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
	)

	collectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gpuinfo_collection_total",
			Help: "Total number of GPU collection attempts",
		},
		[]string{"status"}, // success or error
	)

	deviceCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gpuinfo_devices",
			Help: "Number of physical GPUs found by the last collection",
		},
	)
)
