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

// Package collector provides the collection interface over GPU detection.
//
// The Collector interface defines a single method for gathering data:
//
//	type Collector interface {
//	    Collect(ctx context.Context) (*gpu.Info, error)
//	}
//
// The Factory interface enables dependency injection and testing by
// abstracting collector creation:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithUnstableProps(),
//	)
//	gc, err := factory.CreateGPUCollector()
package collector

import (
	"context"

	"github.com/golemfactory/gpu-info/pkg/gpu"
)

// Collector gathers GPU information in a single pass. Each Collect call
// acquires and releases the underlying vendor library; no state is carried
// between calls.
type Collector interface {
	Collect(ctx context.Context) (*gpu.Info, error)
}

// Finder locates a single device by its vendor UUID.
type Finder interface {
	Find(ctx context.Context, uuid string) (*gpu.Device, error)
}
