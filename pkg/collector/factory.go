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
	"github.com/golemfactory/gpu-info/pkg/detect"
	"github.com/golemfactory/gpu-info/pkg/detect/cuda"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateGPUCollector() (Collector, error)
	CreateFinder() (Finder, error)
}

// Option configures the DefaultFactory.
type Option func(*DefaultFactory)

// WithUnstableProps enables properties whose values are estimates,
// such as peak memory bandwidth.
func WithUnstableProps() Option {
	return func(f *DefaultFactory) {
		f.unstable = true
	}
}

// WithForcedPlatforms makes detection fail, rather than skip, when any of
// the named platforms cannot be opened.
func WithForcedPlatforms(names ...string) Option {
	return func(f *DefaultFactory) {
		f.forced = append(f.forced, names...)
	}
}

// WithVersion records the tool version for diagnostics.
func WithVersion(version string) Option {
	return func(f *DefaultFactory) {
		f.version = version
	}
}

// DefaultFactory creates collectors backed by the real vendor platforms.
type DefaultFactory struct {
	unstable bool
	forced   []string
	version  string
}

// NewDefaultFactory creates a factory with default settings,
// applying any options given.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateGPUCollector creates a collector over all supported platforms.
func (f *DefaultFactory) CreateGPUCollector() (Collector, error) {
	detector, err := f.buildDetector()
	if err != nil {
		return nil, err
	}
	return &GPUCollector{Detector: detector}, nil
}

// CreateFinder creates a by-UUID device finder over the same platforms.
func (f *DefaultFactory) CreateFinder() (Finder, error) {
	detector, err := f.buildDetector()
	if err != nil {
		return nil, err
	}
	return &GPUCollector{Detector: detector}, nil
}

func (f *DefaultFactory) buildDetector() (*detect.Detector, error) {
	b := detect.NewBuilder(cuda.NewPlatform())
	if f.unstable {
		b.UnstableProps()
	}
	for _, name := range f.forced {
		b.Force(name)
	}
	return b.Build()
}
