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
	"context"
	"log/slog"
	"time"

	"github.com/golemfactory/gpu-info/pkg/gpu"
)

// detector is the slice of detect.Detector this collector drives.
type detector interface {
	Detect(ctx context.Context) (*gpu.Info, error)
	SearchByUUID(ctx context.Context, uuid string) (*gpu.Device, error)
}

// GPUCollector runs full GPU detection through its configured detector.
type GPUCollector struct {
	Detector detector
}

// Collect implements the Collector interface. It performs one scoped
// detection pass and reports timing and outcome metrics.
func (c *GPUCollector) Collect(ctx context.Context) (*gpu.Info, error) {
	start := time.Now()
	defer func() {
		collectionDuration.Observe(time.Since(start).Seconds())
	}()

	slog.Debug("collecting gpu information")

	info, err := c.Detector.Detect(ctx)
	if err != nil {
		collectionTotal.WithLabelValues("error").Inc()
		slog.Error("gpu collection failed", slog.String("error", err.Error()))
		return nil, err
	}

	collectionTotal.WithLabelValues("success").Inc()
	deviceCount.Set(float64(info.DeviceCount()))

	slog.Debug("gpu collection complete",
		slog.Int("devices", info.DeviceCount()),
		slog.Int("groups", len(info.Devices)))
	return info, nil
}

// Find implements the Finder interface, resolving one device by UUID.
func (c *GPUCollector) Find(ctx context.Context, uuid string) (*gpu.Device, error) {
	slog.Debug("searching for gpu", slog.String("uuid", uuid))
	return c.Detector.SearchByUUID(ctx, uuid)
}
