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

package cuda

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/golemfactory/gpu-info/pkg/detect"
	"github.com/golemfactory/gpu-info/pkg/gpu"
	"github.com/golemfactory/gpu-info/pkg/version"
)

// PlatformName identifies this backend to the detector.
const PlatformName = "cuda"

// library is the slice of the NVML surface this package calls, extracted
// so tests can run without libnvidia-ml.so present.
type library interface {
	Init() nvml.Return
	Shutdown() nvml.Return
	SystemGetDriverVersion() (string, nvml.Return)
	SystemGetCudaDriverVersion() (int, nvml.Return)
	DeviceGetCount() (int, nvml.Return)
	DeviceGetHandleByIndex(index int) (device, nvml.Return)
	DeviceGetHandleByUUID(uuid string) (device, nvml.Return)
}

// systemLibrary delegates to the real NVML bindings.
type systemLibrary struct{}

func (systemLibrary) Init() nvml.Return     { return nvml.Init() }
func (systemLibrary) Shutdown() nvml.Return { return nvml.Shutdown() }

func (systemLibrary) SystemGetDriverVersion() (string, nvml.Return) {
	return nvml.SystemGetDriverVersion()
}

func (systemLibrary) SystemGetCudaDriverVersion() (int, nvml.Return) {
	return nvml.SystemGetCudaDriverVersion()
}

func (systemLibrary) DeviceGetCount() (int, nvml.Return) {
	return nvml.DeviceGetCount()
}

func (systemLibrary) DeviceGetHandleByIndex(index int) (device, nvml.Return) {
	d, ret := nvml.DeviceGetHandleByIndex(index)
	return d, ret
}

func (systemLibrary) DeviceGetHandleByUUID(uuid string) (device, nvml.Return) {
	d, ret := nvml.DeviceGetHandleByUUID(uuid)
	return d, ret
}

// Platform detects NVIDIA GPUs through the NVML management library.
type Platform struct {
	lib library
}

// NewPlatform creates the NVML-backed detection platform.
func NewPlatform() *Platform {
	return &Platform{lib: systemLibrary{}}
}

// Name implements detect.Platform.
func (p *Platform) Name() string {
	return PlatformName
}

// Open initializes NVML and returns a session bound to the loaded library.
// A missing library, an unloaded driver, or denied access all surface as
// detect.ErrHardwareUnavailable.
func (p *Platform) Open(flags detect.Flags) (detect.Session, error) {
	if ret := p.lib.Init(); ret != nvml.SUCCESS {
		switch ret {
		case nvml.ERROR_LIBRARY_NOT_FOUND:
			return nil, detect.NewHardwareUnavailable("nvml library not found", errorFor(ret))
		case nvml.ERROR_DRIVER_NOT_LOADED:
			return nil, detect.NewHardwareUnavailable("nvidia driver not loaded", errorFor(ret))
		case nvml.ERROR_NO_PERMISSION:
			return nil, detect.NewHardwareUnavailable("no permission to talk to the nvidia driver", errorFor(ret))
		default:
			return nil, detect.NewHardwareUnavailable("failed to initialize nvml", errorFor(ret))
		}
	}

	return &session{lib: p.lib, unstable: flags.Unstable}, nil
}

// session holds the initialized NVML library for the duration of one
// detection call.
type session struct {
	lib      library
	unstable bool
}

// API reads the library-wide CUDA runtime and kernel driver versions.
// Both are mandatory; a failure of either query fails the whole collection.
func (s *session) API() (gpu.API, error) {
	packed, ret := s.lib.SystemGetCudaDriverVersion()
	if ret != nvml.SUCCESS {
		return gpu.API{}, detect.NewHardwareUnavailable("failed to read cuda version", errorFor(ret))
	}

	driver, ret := s.lib.SystemGetDriverVersion()
	if ret != nvml.SUCCESS {
		return gpu.API{}, detect.NewHardwareUnavailable("failed to read driver version", errorFor(ret))
	}

	return gpu.API{CUDA: &gpu.CUDA{
		Version:       version.FromCUDADriver(packed).String(),
		DriverVersion: driver,
	}}, nil
}

// Devices reads every enumerated GPU in NVML index order. Any single
// property failure aborts with a *detect.DeviceQueryError.
func (s *session) Devices() ([]gpu.Device, error) {
	count, ret := s.lib.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, detect.NewHardwareUnavailable("failed to count devices", errorFor(ret))
	}

	devices := make([]gpu.Device, 0, count)
	for i := 0; i < count; i++ {
		handle, ret := s.lib.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			return nil, detect.NewDeviceQueryError(i, detect.PropModel, errorFor(ret))
		}
		d, err := readDevice(i, handle, s.unstable)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}

	return devices, nil
}

// DeviceByUUID resolves one device by its NVML UUID ("GPU-..." form).
// An unknown UUID yields (nil, nil).
func (s *session) DeviceByUUID(uuid string) (*gpu.Device, error) {
	handle, ret := s.lib.DeviceGetHandleByUUID(uuid)
	if ret == nvml.ERROR_NOT_FOUND {
		return nil, nil
	}
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("failed to resolve device %s: %w", uuid, errorFor(ret))
	}

	index := 0
	if i, ret := handle.GetIndex(); ret == nvml.SUCCESS {
		index = i
	}

	d, err := readDevice(index, handle, s.unstable)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Close shuts NVML down, releasing the driver handle.
func (s *session) Close() error {
	if ret := s.lib.Shutdown(); ret != nvml.SUCCESS {
		return fmt.Errorf("failed to shut down nvml: %w", errorFor(ret))
	}
	return nil
}

func errorFor(ret nvml.Return) error {
	return fmt.Errorf("nvml: %s", nvml.ErrorString(ret))
}
