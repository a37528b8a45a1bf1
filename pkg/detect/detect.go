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

package detect

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/golemfactory/gpu-info/pkg/gpu"
)

// Flags controls optional detection behavior, passed to each platform
// when its session is opened.
type Flags struct {
	// Unstable enables properties we are not certain about, such as the
	// estimated peak memory bandwidth.
	Unstable bool

	// Force makes a missing platform a hard error instead of a silent skip.
	Force bool
}

// Session is a scoped handle to an open vendor library. It is acquired at
// the start of one detection call and must be released via Close on every
// exit path. Sessions are not safe for concurrent use; callers needing
// concurrent detection must serialize externally.
type Session interface {
	// API returns the library-wide runtime and driver versions.
	// A failure here is terminal for the whole collection.
	API() (gpu.API, error)

	// Devices reads the full property set of every enumerated device, in
	// vendor enumeration order. An empty slice is a valid result for a
	// host with a compatible driver but no GPU. Any single property
	// failure returns a *DeviceQueryError and no devices.
	Devices() ([]gpu.Device, error)

	// DeviceByUUID reads one device identified by its vendor UUID.
	// Returns (nil, nil) when the UUID is unknown to this platform.
	DeviceByUUID(uuid string) (*gpu.Device, error)

	// Close releases the underlying library handle. Safe to call once
	// per session.
	Close() error
}

// Platform is a detection backend for one vendor management library.
type Platform interface {
	// Name identifies the platform, e.g. "cuda".
	Name() string

	// Open acquires a session. Returns an error matching
	// ErrHardwareUnavailable when the library or driver is absent.
	Open(flags Flags) (Session, error)
}

// Builder assembles a Detector from one or more platforms.
type Builder struct {
	unstable  bool
	force     map[string]bool
	platforms []Platform
}

// NewBuilder creates a Builder over the given platforms.
// Platforms are probed in registration order.
func NewBuilder(platforms ...Platform) *Builder {
	return &Builder{
		force:     make(map[string]bool),
		platforms: platforms,
	}
}

// UnstableProps enables properties about which we are not certain
// (estimated memory bandwidth).
func (b *Builder) UnstableProps() *Builder {
	b.unstable = true
	return b
}

// Force makes detection fail when the named platform cannot be opened,
// instead of skipping it.
func (b *Builder) Force(name string) *Builder {
	b.force[name] = true
	return b
}

// Build validates the configuration and returns a Detector.
// Forcing a platform that was never registered is an error.
func (b *Builder) Build() (*Detector, error) {
	registered := make(map[string]bool, len(b.platforms))
	for _, p := range b.platforms {
		registered[p.Name()] = true
	}
	for name := range b.force {
		if !registered[name] {
			return nil, fmt.Errorf("forced platform %q is not registered", name)
		}
	}

	return &Detector{
		unstable:  b.unstable,
		force:     b.force,
		platforms: b.platforms,
	}, nil
}

// Detector runs GPU detection across its configured platforms.
//
// Every call acquires and releases the vendor library sessions within the
// scope of that call; nothing is shared across invocations, so repeated
// detections of unchanged hardware are idempotent.
type Detector struct {
	unstable  bool
	force     map[string]bool
	platforms []Platform
}

// Detect enumerates all available GPUs and returns the aggregate result.
//
// The sequence per platform is strictly linear: open handle, read the
// library-wide API info (mandatory), read every device property
// (all-or-nothing), close handle. Platforms whose library is absent are
// skipped unless forced; when no platform opens at all the detection
// fails with ErrHardwareUnavailable.
//
// The context is checked between steps, but a blocked vendor library call
// is not interruptible.
func (d *Detector) Detect(ctx context.Context) (*gpu.Info, error) {
	info := &gpu.Info{}
	opened := 0

	for _, p := range d.platforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		session, err := p.Open(d.flagsFor(p))
		if err != nil {
			if !d.force[p.Name()] && stderrors.Is(err, ErrHardwareUnavailable) {
				slog.Debug("platform unavailable, skipping",
					slog.String("platform", p.Name()),
					slog.String("reason", err.Error()))
				continue
			}
			return nil, err
		}
		opened++

		if err := d.detectPlatform(ctx, p.Name(), session, info); err != nil {
			return nil, err
		}
	}

	if opened == 0 {
		return nil, NewHardwareUnavailable("no compatible vendor library present", nil)
	}

	return info, nil
}

// detectPlatform reads everything one platform has to offer.
// The session is released unconditionally, on success and on failure.
func (d *Detector) detectPlatform(ctx context.Context, name string, session Session, info *gpu.Info) error {
	defer closeSession(name, session)

	api, err := session.API()
	if err != nil {
		if stderrors.Is(err, ErrHardwareUnavailable) {
			return err
		}
		return NewHardwareUnavailable("library-wide query failed", err)
	}
	if api.CUDA != nil {
		info.CUDA = api.CUDA
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	devices, err := session.Devices()
	if err != nil {
		return err
	}

	info.Devices = append(info.Devices, gpu.GroupDevices(devices)...)
	return nil
}

// SearchByUUID finds a single device by its vendor UUID across all
// platforms. Returns an error matching ErrNotFound when no platform
// knows the UUID.
func (d *Detector) SearchByUUID(ctx context.Context, uuid string) (*gpu.Device, error) {
	var lastErr error

	for _, p := range d.platforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		session, err := p.Open(d.flagsFor(p))
		if err != nil {
			if !d.force[p.Name()] && stderrors.Is(err, ErrHardwareUnavailable) {
				continue
			}
			return nil, err
		}

		device, err := func() (*gpu.Device, error) {
			defer closeSession(p.Name(), session)
			return session.DeviceByUUID(uuid)
		}()
		if err != nil {
			lastErr = err
			continue
		}
		if device != nil {
			return device, nil
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, uuid)
}

func (d *Detector) flagsFor(p Platform) Flags {
	return Flags{
		Unstable: d.unstable,
		Force:    d.force[p.Name()],
	}
}

func closeSession(name string, session Session) {
	if err := session.Close(); err != nil {
		slog.Warn("failed to release vendor library handle",
			slog.String("platform", name),
			slog.String("error", err.Error()))
	}
}
